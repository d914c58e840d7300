package domain

import (
	"math/big"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

type Event interface {
	EventName() string
	// AuctionRef is empty for events not tied to one auction
	AuctionRef() AuctionId
}

type EventSink interface {
	Emit(c ctx.Ctx, e Event)
}

type AuctionCreated struct {
	Auction       AuctionId `json:"auction"`
	Seller        Address   `json:"seller"`
	AssetContract Address   `json:"assetContract"`
	AssetId       TokenId   `json:"assetId"`
	QuoteToken    Address   `json:"quoteToken"`
	Escrow        Address   `json:"escrow"`
}

type AssetEscrowed struct {
	Auction AuctionId `json:"auction"`
	Seller  Address   `json:"seller"`
}

type BidPlaced struct {
	Auction AuctionId `json:"auction"`
	Bidder  Address   `json:"bidder"`
	Amount  *big.Int  `json:"amount"`
}

type AuctionEnded struct {
	Auction AuctionId `json:"auction"`
	Winner  Address   `json:"winner"`
	Amount  *big.Int  `json:"amount"`
}

type AuctionCancelled struct {
	Auction AuctionId `json:"auction"`
	Seller  Address   `json:"seller"`
}

type FundsWithdrawn struct {
	Auction AuctionId `json:"auction"`
	Account Address   `json:"account"`
	Amount  *big.Int  `json:"amount"`
}

type QuoteTokenAdded struct {
	Token     Address `json:"token"`
	PriceFeed Address `json:"priceFeed"`
	Symbol    string  `json:"symbol"`
}

type RegistryUpgraded struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SupportedChainAdded struct {
	Chain uint64 `json:"chain"`
}

func (AuctionCreated) EventName() string      { return "AuctionCreated" }
func (AssetEscrowed) EventName() string       { return "AssetEscrowed" }
func (BidPlaced) EventName() string           { return "BidPlaced" }
func (AuctionEnded) EventName() string        { return "AuctionEnded" }
func (AuctionCancelled) EventName() string    { return "AuctionCancelled" }
func (FundsWithdrawn) EventName() string      { return "FundsWithdrawn" }
func (QuoteTokenAdded) EventName() string     { return "QuoteTokenAdded" }
func (RegistryUpgraded) EventName() string    { return "RegistryUpgraded" }
func (SupportedChainAdded) EventName() string { return "SupportedChainAdded" }

func (e AuctionCreated) AuctionRef() AuctionId    { return e.Auction }
func (e AssetEscrowed) AuctionRef() AuctionId     { return e.Auction }
func (e BidPlaced) AuctionRef() AuctionId         { return e.Auction }
func (e AuctionEnded) AuctionRef() AuctionId      { return e.Auction }
func (e AuctionCancelled) AuctionRef() AuctionId  { return e.Auction }
func (e FundsWithdrawn) AuctionRef() AuctionId    { return e.Auction }
func (QuoteTokenAdded) AuctionRef() AuctionId     { return "" }
func (RegistryUpgraded) AuctionRef() AuctionId    { return "" }
func (SupportedChainAdded) AuctionRef() AuctionId { return "" }
