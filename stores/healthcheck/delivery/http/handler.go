package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	hcdomain "github.com/xugejunllt/nft-auction-market/domain/healthcheck"
)

type handler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New serves the liveness probe at /health
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	h := &handler{us}

	e.GET("/health", h.check)
}

func (h *handler) check(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	report := h.healthCheck.Check(ctx)
	if !report.Healthy {
		return c.JSON(http.StatusServiceUnavailable, delivery.JsonResponse{
			Data:   report,
			Status: delivery.JsonResponseStatusFail,
		})
	}
	return delivery.MakeJsonResp(c, http.StatusOK, report)
}
