package auction

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type Status string

const (
	StatusCreated   Status = "created"   // listed, asset not in custody yet
	StatusActive    Status = "active"    // escrowed and before end time
	StatusExpired   Status = "expired"   // past end time, waiting for EndAuction
	StatusSettled   Status = "settled"
	StatusCancelled Status = "cancelled"
)

// Auction is the record of one listing. It is mutated only by the auction usecase.
type Auction struct {
	Id            domain.AuctionId
	Escrow        domain.Address // custody account of the asset and the bids
	Seller        domain.Address
	AssetContract domain.Address
	AssetId       domain.TokenId
	QuoteToken    domain.Address
	StartTime     time.Time
	EndTime       time.Time
	HighestBid    *big.Int
	HighestBidder domain.Address // empty iff HighestBid is zero
	Escrowed      bool
	Ended         bool
	Cancelled     bool
	// Withdrawable holds displaced bids waiting to be pulled by their bidders
	Withdrawable map[domain.Address]*big.Int
}

func (a *Auction) Clone() *Auction {
	c := *a
	c.HighestBid = domain.CopyBig(a.HighestBid)
	c.Withdrawable = make(map[domain.Address]*big.Int, len(a.Withdrawable))
	for k, v := range a.Withdrawable {
		c.Withdrawable[k] = domain.CopyBig(v)
	}
	return &c
}

func (a *Auction) HasBids() bool {
	return a.HighestBid != nil && a.HighestBid.Sign() > 0
}

func (a *Auction) Status(now time.Time) Status {
	switch {
	case a.Cancelled:
		return StatusCancelled
	case a.Ended:
		return StatusSettled
	case !now.Before(a.EndTime):
		return StatusExpired
	case !a.Escrowed:
		return StatusCreated
	default:
		return StatusActive
	}
}

func (a *Auction) IsActive(now time.Time) bool {
	return !a.Ended && now.Before(a.EndTime)
}

func (a *Auction) ToDetails(now time.Time) *Details {
	return &Details{
		Id:            a.Id,
		Escrow:        a.Escrow,
		Seller:        a.Seller,
		AssetContract: a.AssetContract,
		AssetId:       a.AssetId,
		QuoteToken:    a.QuoteToken,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		HighestBid:    domain.CopyBig(a.HighestBid).String(),
		HighestBidder: a.HighestBidder,
		Escrowed:      a.Escrowed,
		Ended:         a.Ended,
		Status:        a.Status(now),
	}
}

type Details struct {
	Id            domain.AuctionId `json:"id"`
	Escrow        domain.Address   `json:"escrow"`
	Seller        domain.Address   `json:"seller"`
	AssetContract domain.Address   `json:"assetContract"`
	AssetId       domain.TokenId   `json:"assetId"`
	QuoteToken    domain.Address   `json:"quoteToken"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       time.Time        `json:"endTime"`
	HighestBid    string           `json:"highestBid"`
	HighestBidder domain.Address   `json:"highestBidder"`
	Escrowed      bool             `json:"escrowed"`
	Ended         bool             `json:"ended"`
	Status        Status           `json:"status"`
}

type BasicInfo struct {
	Seller        domain.Address `json:"seller"`
	AssetContract domain.Address `json:"assetContract"`
	AssetId       domain.TokenId `json:"assetId"`
	QuoteToken    domain.Address `json:"quoteToken"`
	Ended         bool           `json:"ended"`
}

type TimeInfo struct {
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	TimeRemaining time.Duration `json:"timeRemaining"`
}

// Settlement is the outcome of EndAuction. SellerPayout + Fee == Amount when Winner is set.
type Settlement struct {
	Auction      domain.AuctionId `json:"auction"`
	Winner       domain.Address   `json:"winner"`
	Amount       *big.Int         `json:"amount"`
	Fee          *big.Int         `json:"fee"`
	SellerPayout *big.Int         `json:"sellerPayout"`
}

type SettleResult struct {
	Auction    domain.AuctionId `json:"auction"`
	Settlement *Settlement      `json:"settlement,omitempty"`
	Err        string           `json:"err,omitempty"`
}

type Repo interface {
	Insert(c ctx.Ctx, a *Auction) error
	// FindOne returns a copy, ErrUnknownAuction if missing
	FindOne(c ctx.Ctx, id domain.AuctionId) (*Auction, error)
	FindAll(c ctx.Ctx) ([]*Auction, error)
	// Update runs fn on a copy under the auction's lock and stores the copy only when fn succeeds
	Update(c ctx.Ctx, id domain.AuctionId, fn func(a *Auction) error) error
	Count(c ctx.Ctx) (int, error)
}

// Registry is what an auction reports to once it settles
type Registry interface {
	RecordSettlement(c ctx.Ctx, id domain.AuctionId, seller, winner domain.Address, amount *big.Int) error
	FeeDiscountBps(c ctx.Ctx, user domain.Address) (int64, error)
	PlatformFeeRecipient(c ctx.Ctx) domain.Address
}

//go:generate mockery --name Usecase --output mocks

type Usecase interface {
	Escrow(c ctx.Ctx, id domain.AuctionId, caller domain.Address) error
	// Bid places amount; payment is the attached native value and must equal amount on native auctions
	Bid(c ctx.Ctx, id domain.AuctionId, bidder domain.Address, amount, payment *big.Int) error
	EndAuction(c ctx.Ctx, id domain.AuctionId) (*Settlement, error)
	CancelAuction(c ctx.Ctx, id domain.AuctionId, caller domain.Address) error
	Withdraw(c ctx.Ctx, id domain.AuctionId, caller domain.Address) (*big.Int, error)
	Withdrawable(c ctx.Ctx, id domain.AuctionId, account domain.Address) (*big.Int, error)
	// SettleExpired ends every auction past its end time, on explicit request only
	SettleExpired(c ctx.Ctx) ([]SettleResult, error)

	GetAuctionDetails(c ctx.Ctx, id domain.AuctionId) (*Details, error)
	GetAuctionBasicInfo(c ctx.Ctx, id domain.AuctionId) (*BasicInfo, error)
	GetAuctionTimeInfo(c ctx.Ctx, id domain.AuctionId) (*TimeInfo, error)
	IsAuctionActive(c ctx.Ctx, id domain.AuctionId) (bool, error)
	GetBidUsdValue(c ctx.Ctx, id domain.AuctionId, amount *big.Int) (decimal.Decimal, error)
	CalculateDynamicFee(c ctx.Ctx, id domain.AuctionId, amount *big.Int) (*big.Int, error)
}
