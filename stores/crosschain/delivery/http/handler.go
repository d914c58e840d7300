package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/crosschain"
	authMiddleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
)

type handler struct {
	crosschain crosschain.Usecase
}

// New registers the receiver routes. Messages come from the relay, which signs in
// as the owner.
func New(
	e *echo.Echo,
	crosschain crosschain.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{crosschain}

	g := e.Group("/crosschain")

	g.GET("/chains/:chain", h.isSupported)

	g.POST("/chains", h.addChain, authMiddleware.Auth(), authMiddleware.IsOwner())

	g.POST("/messages", h.deliver, authMiddleware.Auth(), authMiddleware.IsOwner())
}

func (h *handler) isSupported(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	chain, err := strconv.ParseUint(c.Param("chain"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.crosschain.IsSupportedChain(ctx, chain))
}

func (h *handler) addChain(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Chain uint64 `json:"chain" validate:"gt=0"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.crosschain.AddSupportedChain(ctx, caller, p.Chain); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

// deliver takes the message with a base64 payload
func (h *handler) deliver(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	msg := crosschain.Message{}
	if err := c.Bind(&msg); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.crosschain.Deliver(ctx, msg); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}
