package usecase

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
)

// readings dated slightly ahead of the local clock are tolerated
const maxClockSkew = time.Minute

type impl struct {
	feed   domain.PriceFeed
	tokens domain.TokenRegistry
	clock  domain.Clock
	maxAge time.Duration
}

func New(
	feed domain.PriceFeed,
	tokens domain.TokenRegistry,
	clock domain.Clock,
	maxAge time.Duration,
) domain.PriceOracle {
	return &impl{feed: feed, tokens: tokens, clock: clock, maxAge: maxAge}
}

func (im *impl) LatestAnswer(c ctx.Ctx, tokenAddr domain.Address) (decimal.Decimal, error) {
	_, reading, err := im.reading(c, tokenAddr)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(reading.Answer, -int32(reading.Decimals)), nil
}

// ToUsd scales amount*answer by both precisions at once so no digit is dropped
func (im *impl) ToUsd(c ctx.Ctx, tokenAddr domain.Address, amount *big.Int) (decimal.Decimal, error) {
	if amount == nil || amount.Sign() < 0 {
		return decimal.Zero, domain.ErrInvalidNumberFormat
	}

	token, reading, err := im.reading(c, tokenAddr)
	if err != nil {
		return decimal.Zero, err
	}

	raw := new(big.Int).Mul(amount, reading.Answer)
	exp := int32(token.Decimals) + int32(reading.Decimals)
	return decimal.NewFromBigInt(raw, -exp), nil
}

func (im *impl) reading(c ctx.Ctx, tokenAddr domain.Address) (*domain.QuoteToken, *domain.PriceReading, error) {
	token, err := im.tokens.Get(c, tokenAddr)
	if err != nil {
		c.WithFields(log.Fields{
			"err":          err,
			"tokenAddress": tokenAddr,
		}).Error("tokens.Get failed")
		return nil, nil, err
	}

	if token.PriceFeed.IsEmpty() {
		return nil, nil, domain.ErrNoPriceFeed
	}

	reading, err := im.feed.LatestPrice(c, token.PriceFeed)
	if err != nil {
		c.WithFields(log.Fields{
			"err":          err,
			"tokenAddress": tokenAddr,
			"feed":         token.PriceFeed,
		}).Error("feed.LatestPrice failed")
		return nil, nil, err
	}

	if !im.valid(reading) {
		c.WithFields(log.Fields{
			"tokenAddress": tokenAddr,
			"feed":         token.PriceFeed,
			"answer":       reading.Answer,
			"updatedAt":    reading.UpdatedAt,
		}).Warn("rejected price reading")
		return nil, nil, domain.ErrStaleOrInvalidPrice
	}

	return token, reading, nil
}

func (im *impl) valid(r *domain.PriceReading) bool {
	if r.Answer == nil || r.Answer.Sign() <= 0 || r.UpdatedAt.IsZero() {
		return false
	}
	age := im.clock.Now().Sub(r.UpdatedAt)
	return age <= im.maxAge && age >= -maxClockSkew
}
