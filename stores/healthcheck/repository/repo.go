package repository

import (
	"bytes"
	"time"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	hcdomain "github.com/xugejunllt/nft-auction-market/domain/healthcheck"
	"github.com/xugejunllt/nft-auction-market/domain/keys"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider"
)

var probe = []byte("1")

type impl struct {
	cache provider.Provider
}

func New(cache provider.Provider) hcdomain.HealthCheckRepo {
	return &impl{
		cache: cache,
	}
}

// PingCache round trips a probe key through the cache
func (im *impl) PingCache(context ctx.Ctx) error {
	key := keys.CacheKey(keys.PfxHealthCheck, "testset")
	if err := im.cache.Set(context, key, probe, 30*time.Second); err != nil {
		context.WithField("err", err).Error("test cache set failed")
		return err
	}

	val, _, err := im.cache.Get(context, key)
	if err != nil {
		context.WithField("err", err).Error("test cache get failed")
		return err
	}
	if !bytes.Equal(val, probe) {
		context.WithField("val", string(val)).Error("test cache get mismatched")
		return provider.ErrNotFound
	}
	return nil
}
