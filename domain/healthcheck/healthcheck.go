package healthcheck

import (
	"time"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Report lists the status of every probed component
type Report struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
	StartedAt  time.Time         `json:"startedAt"`
	Uptime     string            `json:"uptime"`
}

type HealthCheckUsecase interface {
	Check(c ctx.Ctx) *Report
}

// HealthCheckRepo probes the stores the service depends on
type HealthCheckRepo interface {
	PingCache(c ctx.Ctx) error
}
