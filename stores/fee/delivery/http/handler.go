package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/middleware"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider"
)

// tiers are fixed at startup, so their response is safe to cache
const tiersCacheTtl = time.Minute

type handler struct {
	fees domain.FeeSchedule
}

func New(e *echo.Echo, fees domain.FeeSchedule, httpCache provider.Provider) {
	h := &handler{fees}

	g := e.Group("/fees")

	g.GET("", h.feeFor)

	g.GET("/tiers", h.getTiers, middleware.CacheHttp(httpCache, tiersCacheTtl))
}

func (h *handler) feeFor(c echo.Context) error {
	amount, err := domain.ParseAmount(c.QueryParam("amount"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.fees.FeeFor(amount).String())
}

func (h *handler) getTiers(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.fees.Tiers())
}
