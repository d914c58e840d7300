package chainlink

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/xugejunllt/nft-auction-market/base/abi"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/keys"
	"github.com/xugejunllt/nft-auction-market/service/cache"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider/primitive"
	"github.com/xugejunllt/nft-auction-market/service/chain"
)

type impl struct {
	chainClient chain.Client
	chainId     domain.ChainId
	cache       cache.Service
}

// New reads AggregatorV3 feeds deployed on chainId. Readings are cached for ttl,
// staleness is judged by the consumer from UpdatedAt.
func New(chainClient chain.Client, chainId domain.ChainId, ttl time.Duration) domain.PriceFeed {
	return &impl{
		chainClient: chainClient,
		chainId:     chainId,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxPriceFeed,
			Cache: primitive.NewPrimitive("chainlink_cache", 8),
		}),
	}
}

func (im *impl) LatestPrice(c ctx.Ctx, feed domain.Address) (*domain.PriceReading, error) {
	var res domain.PriceReading

	key := keys.CacheKey(strconv.Itoa(int(im.chainId)), feed.ToLowerStr(), "latest")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		return im.latestPrice(c, feed)
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": im.chainId,
			"feed":    feed,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}

	return &res, nil
}

func (im *impl) latestPrice(c ctx.Ctx, feed domain.Address) (*domain.PriceReading, error) {
	feedAddr := common.HexToAddress(string(feed))

	round, err := im.chainClient.Call(c, int32(im.chainId), feedAddr, nil, abi.ChainlinkFeedABI, "latestRoundData")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": im.chainId,
			"feed":    feed,
		}).Error("chainClient.Call latestRoundData failed")
		return nil, err
	}

	decimals, err := im.chainClient.Call(c, int32(im.chainId), feedAddr, nil, abi.ChainlinkFeedABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": im.chainId,
			"feed":    feed,
		}).Error("chainClient.Call decimals failed")
		return nil, err
	}

	// roundId, answer, startedAt, updatedAt, answeredInRound
	answer := round[1].(*big.Int)
	updatedAt := round[3].(*big.Int)

	return &domain.PriceReading{
		Answer:    answer,
		Decimals:  decimals[0].(uint8),
		UpdatedAt: time.Unix(updatedAt.Int64(), 0).UTC(),
	}, nil
}
