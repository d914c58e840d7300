package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
	"github.com/xugejunllt/nft-auction-market/middleware"
	"github.com/xugejunllt/nft-auction-market/service/eventlog"
	authMiddleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
)

type handler struct {
	auction auction.Usecase
	events  *eventlog.Log
}

func New(
	e *echo.Echo,
	auction auction.Usecase,
	events *eventlog.Log,
	authMiddleware *authMiddleware.AuthMiddleware,
) {
	h := &handler{auction, events}

	e.POST("/auctions/settle-expired", h.settleExpired, authMiddleware.Auth())

	g := e.Group("/auctions/:id")

	g.GET("", h.get)

	g.GET("/basic", h.getBasicInfo)

	g.GET("/time", h.getTimeInfo)

	g.GET("/active", h.isActive)

	g.GET("/events", h.getEvents)

	g.GET("/usd", h.getBidUsdValue)

	g.GET("/fee", h.getDynamicFee)

	g.GET("/withdrawable/:account", h.getWithdrawable, middleware.IsValidAddress("account"))

	g.POST("/escrow", h.escrow, authMiddleware.Auth())

	g.POST("/bids", h.bid, authMiddleware.Auth())

	g.POST("/cancel", h.cancel, authMiddleware.Auth())

	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())

	// anyone may end an auction past its end time
	g.POST("/end", h.end)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.GetAuctionDetails(ctx, domain.AuctionId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBasicInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.GetAuctionBasicInfo(ctx, domain.AuctionId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getTimeInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.GetAuctionTimeInfo(ctx, domain.AuctionId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) isActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.IsAuctionActive(ctx, domain.AuctionId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getEvents(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.events.ByAuction(domain.AuctionId(c.Param("id"))))
}

func (h *handler) getBidUsdValue(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	amount, err := domain.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	usd, err := h.auction.GetBidUsdValue(ctx, domain.AuctionId(c.Param("id")), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, usd.String())
}

func (h *handler) getDynamicFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	amount, err := domain.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	fee, err := h.auction.CalculateDynamicFee(ctx, domain.AuctionId(c.Param("id")), amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, fee.String())
}

func (h *handler) getWithdrawable(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	owed, err := h.auction.Withdrawable(ctx, domain.AuctionId(c.Param("id")), domain.Address(c.Param("account")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, owed.String())
}

func (h *handler) escrow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.auction.Escrow(ctx, domain.AuctionId(c.Param("id")), caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Amount string `json:"amount" validate:"required,amount"`
		// Payment is the attached native value, native auctions only
		Payment string `json:"payment" validate:"omitempty,amount"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, _ := domain.ParseAmount(p.Amount)
	payment := domain.Big0
	if p.Payment != "" {
		payment, _ = domain.ParseAmount(p.Payment)
	}

	if err := h.auction.Bid(ctx, domain.AuctionId(c.Param("id")), caller, amount, payment); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.EndAuction(ctx, domain.AuctionId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.auction.CancelAuction(ctx, domain.AuctionId(c.Param("id")), caller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	amount, err := h.auction.Withdraw(ctx, domain.AuctionId(c.Param("id")), caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, amount.String())
}

func (h *handler) settleExpired(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.SettleExpired(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
