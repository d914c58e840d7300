package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
	"github.com/xugejunllt/nft-auction-market/middleware"
	authMiddleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
)

type handler struct {
	registry registry.Usecase
}

func New(
	e *echo.Echo,
	registry registry.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{registry}

	e.POST("/auctions", h.createAuction, authMiddleware.Auth())

	g := e.Group("/registry")

	g.GET("/version", h.getVersion)

	g.GET("/stats", h.getFactoryStats)

	g.GET("/auctions", h.getAuctions)

	g.GET("/fee", h.calculateFee)

	g.GET("/users/:address", h.getUserStats, middleware.IsValidAddress("address"))

	g.POST("/upgrade", h.upgrade, authMiddleware.Auth(), authMiddleware.IsOwner())

	// available after the V2 upgrade
	g.GET("/platform", h.getPlatformStats)

	g.GET("/users/:address/level", h.getUserLevel, middleware.IsValidAddress("address"))

	g.GET("/users/:address/full", h.getUserFullInfo, middleware.IsValidAddress("address"))

	g.POST("/users/:address/level", h.updateUserLevel, middleware.IsValidAddress("address"))
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		AssetContract domain.Address `json:"assetContract" validate:"required,address"`
		AssetId       domain.TokenId `json:"assetId" validate:"required"`
		// Duration in seconds
		Duration   int64          `json:"duration" validate:"gt=0"`
		QuoteToken domain.Address `json:"quoteToken" validate:"required,address"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := h.registry.CreateAuction(ctx, caller, registry.CreateParams{
		AssetContract: p.AssetContract,
		AssetId:       p.AssetId,
		Duration:      time.Duration(p.Duration) * time.Second,
		QuoteToken:    p.QuoteToken,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, id)
}

func (h *handler) getVersion(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.Version(ctx))
}

func (h *handler) getFactoryStats(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.GetFactoryStats(ctx))
}

func (h *handler) getAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res := struct {
		Count    uint64             `json:"count"`
		Auctions []domain.AuctionId `json:"auctions"`
	}{
		Count:    h.registry.GetAuctionsCount(ctx),
		Auctions: h.registry.GetAuctions(ctx),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) calculateFee(c echo.Context) error {
	amount, err := domain.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.CalculateFeeForAmount(amount).String())
}

func (h *handler) getUserStats(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.GetUserStats(ctx, domain.Address(c.Param("address"))))
}

func (h *handler) upgrade(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Schema registry.SchemaVersion `json:"schema" validate:"gt=0"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.registry.Upgrade(ctx, caller, p.Schema); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.Version(ctx))
}

func (h *handler) getPlatformStats(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.registry.GetPlatformStats(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getUserLevel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	level, discount, err := h.registry.GetUserLevelAndDiscount(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Level       uint8 `json:"level"`
		DiscountBps int64 `json:"discountBps"`
	}{level, discount})
}

func (h *handler) getUserFullInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.registry.GetUserFullInfo(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) updateUserLevel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	level, err := h.registry.UpdateUserLevel(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, level)
}
