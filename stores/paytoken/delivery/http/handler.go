package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/middleware"
	authMiddleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
)

type handler struct {
	tokens domain.TokenRegistry
	oracle domain.PriceOracle
}

func New(
	e *echo.Echo,
	tokens domain.TokenRegistry,
	oracle domain.PriceOracle,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{tokens, oracle}

	gs := e.Group("/tokens")

	gs.GET("", h.list)

	gs.POST("", h.addQuoteToken, authMiddleware.Auth(), authMiddleware.IsOwner())

	gs.GET("/:address", h.get, middleware.IsValidAddress("address"))

	gs.GET("/:address/price", h.getPrice, middleware.IsValidAddress("address"))

	gs.GET("/:address/usd", h.toUsd, middleware.IsValidAddress("address"))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tokens.List(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) addQuoteToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Address   domain.Address `json:"address" validate:"required,address"`
		PriceFeed domain.Address `json:"priceFeed" validate:"omitempty,address"`
		Symbol    string         `json:"symbol" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.tokens.AddQuoteToken(ctx, caller, p.Address, p.PriceFeed, p.Symbol); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.tokens.Get(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	price, err := h.oracle.LatestAnswer(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, price.String())
}

func (h *handler) toUsd(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	amount, err := domain.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	usd, err := h.oracle.ToUsd(ctx, domain.Address(c.Param("address")), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, usd.String())
}
