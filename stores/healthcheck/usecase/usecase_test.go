package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	hcdomain "github.com/xugejunllt/nft-auction-market/domain/healthcheck"
)

var mockCtx = ctx.Background()

type fakeRepo struct {
	err error
}

func (r *fakeRepo) PingCache(ctx.Ctx) error { return r.err }

type stepClock struct {
	now time.Time
}

func (s *stepClock) Now() time.Time { return s.now }

type testsuite struct {
	suite.Suite
	repo  *fakeRepo
	clock *stepClock
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.repo = &fakeRepo{}
	t.clock = &stepClock{now: time.Unix(1700000000, 0)}
}

func (t *testsuite) TestHealthy() {
	uc := New(t.repo, t.clock)
	t.clock.now = t.clock.now.Add(90*time.Second + 300*time.Millisecond)

	r := uc.Check(mockCtx)
	t.True(r.Healthy)
	t.Equal(hcdomain.StatusUp, r.Components["cache"])
	t.Equal("1m30s", r.Uptime)
	t.Equal(time.Unix(1700000000, 0), r.StartedAt)
}

func (t *testsuite) TestCacheDown() {
	t.repo.err = errors.New("evicted")
	r := New(t.repo, t.clock).Check(mockCtx)
	t.False(r.Healthy)
	t.Equal(hcdomain.StatusDown, r.Components["cache"])
}
