package domain

import (
	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

// QuoteToken is the owner curated config of a currency auctions can be quoted in
type QuoteToken struct {
	Address   Address `json:"address" cbor:"address"`
	Supported bool    `json:"supported" cbor:"supported"`
	PriceFeed Address `json:"priceFeed" cbor:"priceFeed"`
	Symbol    string  `json:"symbol" cbor:"symbol"`
	Decimals  uint8   `json:"decimals" cbor:"decimals"` // token precision, 18 for native
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, Address) (*QuoteToken, error)
	FindAll(ctx.Ctx) ([]QuoteToken, error)
	Upsert(ctx.Ctx, *QuoteToken) error
}

// TokenRegistry is the token-support table, written by the owner only
type TokenRegistry interface {
	AddQuoteToken(c ctx.Ctx, caller Address, token Address, priceFeed Address, symbol string) error
	IsSupported(c ctx.Ctx, token Address) bool
	// Get fails with ErrNotFound when the token is not supported
	Get(c ctx.Ctx, token Address) (*QuoteToken, error)
	List(c ctx.Ctx) ([]QuoteToken, error)
}
