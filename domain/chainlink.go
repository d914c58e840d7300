package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

// PriceReading is the latest answer of a USD price feed
type PriceReading struct {
	Answer    *big.Int  `json:"answer"`
	Decimals  uint8     `json:"decimals"`
	UpdatedAt time.Time `json:"updatedAt"`
}

//go:generate mockery --name PriceFeed --output mocks

// PriceFeed reads USD price feeds by their reference
type PriceFeed interface {
	LatestPrice(c ctx.Ctx, feed Address) (*PriceReading, error)
}

// PriceOracle converts quote token amounts to USD
type PriceOracle interface {
	// LatestAnswer is the USD price of one whole token
	LatestAnswer(c ctx.Ctx, token Address) (decimal.Decimal, error)
	// ToUsd converts amount, given in raw token units, to USD
	ToUsd(c ctx.Ctx, token Address, amount *big.Int) (decimal.Decimal, error)
}
