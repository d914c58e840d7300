package usecase

import (
	"time"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
	hcdomain "github.com/xugejunllt/nft-auction-market/domain/healthcheck"
)

type impl struct {
	repo      hcdomain.HealthCheckRepo
	clock     domain.Clock
	startedAt time.Time
}

func New(repo hcdomain.HealthCheckRepo, clock domain.Clock) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:      repo,
		clock:     clock,
		startedAt: clock.Now(),
	}
}

func (im *impl) Check(c ctx.Ctx) *hcdomain.Report {
	r := &hcdomain.Report{
		Healthy:    true,
		Components: map[string]string{"cache": hcdomain.StatusUp},
		StartedAt:  im.startedAt,
		Uptime:     im.clock.Now().Sub(im.startedAt).Truncate(time.Second).String(),
	}

	if err := im.repo.PingCache(c); err != nil {
		c.WithFields(log.Fields{"err": err}).Warn("repo.PingCache failed")
		r.Healthy = false
		r.Components["cache"] = hcdomain.StatusDown
	}
	return r
}
