package registry

import (
	"math/big"
	"time"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
)

// SchemaVersion tags the layout of the registry storage. Layouts only ever grow.
type SchemaVersion int

const (
	SchemaV1 SchemaVersion = 1
	SchemaV2 SchemaVersion = 2
)

const (
	VersionV1 = "v1.1.0"
	VersionV2 = "v2.0.0"
)

type FactoryStats struct {
	PlatformFeeRecipient domain.Address `json:"platformFeeRecipient"`
	TotalAuctionsCreated uint64         `json:"totalAuctionsCreated"`
	TotalTradingVolume   *big.Int       `json:"totalTradingVolume"`
}

// UserStats counters never decrease. Level and SuccessfulTrades stay zero before the V2 upgrade.
type UserStats struct {
	CreatedAuctions  uint64   `json:"createdAuctions"`
	TradingVolume    *big.Int `json:"tradingVolume"`
	Level            uint8    `json:"level"`
	SuccessfulTrades uint64   `json:"successfulTrades"`
}

type UserFullInfo struct {
	Stats       UserStats `json:"stats"`
	Level       uint8     `json:"level"`
	DiscountBps int64     `json:"discountBps"`
}

type PlatformStats struct {
	TotalAuctions   uint64   `json:"totalAuctions"`
	TotalSuccessful uint64   `json:"totalSuccessful"`
	SuccessRate     uint64   `json:"successRate"` // percent
	TotalVolume     *big.Int `json:"totalVolume"`
}

type CreateParams struct {
	AssetContract domain.Address
	AssetId       domain.TokenId
	Duration      time.Duration
	QuoteToken    domain.Address
}

type Usecase interface {
	auction.Registry

	CreateAuction(c ctx.Ctx, caller domain.Address, p CreateParams) (domain.AuctionId, error)
	GetFactoryStats(c ctx.Ctx) FactoryStats
	GetUserStats(c ctx.Ctx, user domain.Address) UserStats
	GetAuctionsCount(c ctx.Ctx) uint64
	GetAuctions(c ctx.Ctx) []domain.AuctionId
	CalculateFeeForAmount(amount *big.Int) *big.Int
	Owner(c ctx.Ctx) domain.Address
	Version(c ctx.Ctx) string
	// Upgrade swaps the logic to the given schema, owner only. On failure nothing changes.
	Upgrade(c ctx.Ctx, caller domain.Address, to SchemaVersion) error

	// V2 only, ErrUnsupportedVersion before the upgrade
	UpdateUserLevel(c ctx.Ctx, user domain.Address) (uint8, error)
	GetUserLevelAndDiscount(c ctx.Ctx, user domain.Address) (uint8, int64, error)
	GetUserFullInfo(c ctx.Ctx, user domain.Address) (*UserFullInfo, error)
	GetPlatformStats(c ctx.Ctx) (*PlatformStats, error)
}
