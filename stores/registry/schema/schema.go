// Package schema holds the versioned layouts of the registry storage. A newer layout
// embeds the previous one, so fields are only ever appended.
package schema

import (
	"math/big"
	"time"

	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
)

type Storage interface {
	SchemaVersion() registry.SchemaVersion
	// Base is the layout every version shares
	Base() *StorageV1
}

type UserStatsV1 struct {
	CreatedAuctions uint64   `cbor:"createdAuctions"`
	TradingVolume   *big.Int `cbor:"tradingVolume"`
}

// CreationRecord authenticates settlement reports of an auction
type CreationRecord struct {
	Auction       domain.AuctionId `cbor:"auction"`
	Seller        domain.Address   `cbor:"seller"`
	AssetContract domain.Address   `cbor:"assetContract"`
	AssetId       domain.TokenId   `cbor:"assetId"`
	QuoteToken    domain.Address   `cbor:"quoteToken"`
	CreatedAt     time.Time        `cbor:"createdAt"`
	Reported      bool             `cbor:"reported"`
}

type StorageV1 struct {
	Owner                domain.Address                       `cbor:"owner"`
	PlatformFeeRecipient domain.Address                       `cbor:"platformFeeRecipient"`
	TotalAuctionsCreated uint64                               `cbor:"totalAuctionsCreated"`
	TotalTradingVolume   *big.Int                             `cbor:"totalTradingVolume"`
	Users                map[domain.Address]*UserStatsV1      `cbor:"users"`
	Auctions             map[domain.AuctionId]*CreationRecord `cbor:"auctions"`
	AuctionOrder         []domain.AuctionId                   `cbor:"auctionOrder"`
}

func NewStorageV1(owner, feeRecipient domain.Address) *StorageV1 {
	return &StorageV1{
		Owner:                owner.ToLower(),
		PlatformFeeRecipient: feeRecipient.ToLower(),
		TotalTradingVolume:   new(big.Int),
		Users:                map[domain.Address]*UserStatsV1{},
		Auctions:             map[domain.AuctionId]*CreationRecord{},
		AuctionOrder:         []domain.AuctionId{},
	}
}

func (s *StorageV1) SchemaVersion() registry.SchemaVersion { return registry.SchemaV1 }
func (s *StorageV1) Base() *StorageV1                      { return s }

// User returns the stats of addr, created on first write
func (s *StorageV1) User(addr domain.Address) *UserStatsV1 {
	key := addr.ToLower()
	u, ok := s.Users[key]
	if !ok {
		u = &UserStatsV1{TradingVolume: new(big.Int)}
		s.Users[key] = u
	}
	return u
}

type UserExtV2 struct {
	Level            uint8  `cbor:"level"`
	SuccessfulTrades uint64 `cbor:"successfulTrades"`
}

type StorageV2 struct {
	StorageV1
	UserExt         map[domain.Address]*UserExtV2 `cbor:"userExt"`
	TotalSuccessful uint64                        `cbor:"totalSuccessful"`
}

func (s *StorageV2) SchemaVersion() registry.SchemaVersion { return registry.SchemaV2 }
func (s *StorageV2) Base() *StorageV1                      { return &s.StorageV1 }

func (s *StorageV2) Ext(addr domain.Address) *UserExtV2 {
	key := addr.ToLower()
	u, ok := s.UserExt[key]
	if !ok {
		u = &UserExtV2{}
		s.UserExt[key] = u
	}
	return u
}

// initDefaults fills containers that did not exist in the previous layout
func (s *StorageV2) initDefaults() {
	if s.UserExt == nil {
		s.UserExt = map[domain.Address]*UserExtV2{}
	}
}
