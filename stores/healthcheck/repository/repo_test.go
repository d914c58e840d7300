package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider/primitive"
)

func TestPingCache(t *testing.T) {
	repo := New(primitive.NewPrimitive("health", 1))
	assert.NoError(t, repo.PingCache(ctx.Background()))
	assert.NoError(t, repo.PingCache(ctx.Background()))
}
