package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/ethereum"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
	"github.com/xugejunllt/nft-auction-market/service/eventlog"
	"github.com/xugejunllt/nft-auction-market/service/ledger"
	"github.com/xugejunllt/nft-auction-market/stores/auction/repository"
	feeUsecase "github.com/xugejunllt/nft-auction-market/stores/fee/usecase"
	paytokenRepo "github.com/xugejunllt/nft-auction-market/stores/paytoken/repository"
	paytokenUsecase "github.com/xugejunllt/nft-auction-market/stores/paytoken/usecase"
)

var (
	mockCtx = ctx.Background()

	owner     = domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	seller    = domain.Address("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	buyer     = domain.Address("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
	recipient = domain.Address("0x15d34aaf54267db7d7c367839aaf71a00a2c6a65")
	regAddr   = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	nft       = domain.Address("0xe7f1725e7734ce288f8367e1bb143e90bb3f0512")
	usdc      = domain.Address("0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0")
	unlisted  = domain.Address("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")

	ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type testsuite struct {
	suite.Suite
	clock   fixedClock
	assets  *ledger.Assets
	repo    auction.Repo
	tokens  domain.TokenRegistry
	events  *eventlog.Log
	subject registry.Usecase
	minted  int
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	req := t.Require()
	t.clock = fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	t.assets = ledger.NewAssets()
	t.repo = repository.NewAuctionRepo()
	t.events = eventlog.New(t.clock)
	t.minted = 0

	funds := ledger.NewFunds()
	req.NoError(funds.RegisterToken(mockCtx, usdc, 6))
	t.tokens = paytokenUsecase.New(owner, paytokenRepo.NewPayTokenRepo(), funds, t.events)
	req.NoError(t.tokens.AddQuoteToken(mockCtx, owner, usdc, "", "USDC"))

	fees, err := feeUsecase.New(feeUsecase.DefaultTiers())
	req.NoError(err)

	t.subject = New(&RegistryUseCaseCfg{
		Owner:                owner,
		PlatformFeeRecipient: recipient,
		Address:              regAddr,
		AuctionRepo:          t.repo,
		Tokens:               t.tokens,
		Fees:                 fees,
		Assets:               t.assets,
		Events:               t.events,
		Clock:                t.clock,
	})
}

func (t *testsuite) create(by domain.Address, quote domain.Address) domain.AuctionId {
	assetId := domain.TokenId(big.NewInt(int64(t.minted)).String())
	t.minted++
	t.Require().NoError(t.assets.Mint(mockCtx, nft, assetId, by))
	id, err := t.subject.CreateAuction(mockCtx, by, registry.CreateParams{
		AssetContract: nft,
		AssetId:       assetId,
		Duration:      time.Hour,
		QuoteToken:    quote,
	})
	t.Require().NoError(err)
	return id
}

func (t *testsuite) TestCreateAuction() {
	id := t.create(seller, usdc)

	a, err := t.repo.FindOne(mockCtx, id)
	t.Require().NoError(err)
	t.Equal(seller, a.Seller)
	t.Equal(usdc, a.QuoteToken)
	t.Equal(t.clock.now, a.StartTime)
	t.Equal(time.Hour, a.EndTime.Sub(a.StartTime))
	t.Equal(domain.Address(ethereum.ContractAddress(string(regAddr), 0)), a.Escrow)
	t.Equal(0, a.HighestBid.Sign())
	t.False(a.Escrowed)

	second := t.create(seller, domain.NativeToken)
	b, _ := t.repo.FindOne(mockCtx, second)
	t.Equal(domain.Address(ethereum.ContractAddress(string(regAddr), 1)), b.Escrow)
	t.NotEqual(a.Escrow, b.Escrow)

	t.Equal(uint64(2), t.subject.GetAuctionsCount(mockCtx))
	t.Equal([]domain.AuctionId{id, second}, t.subject.GetAuctions(mockCtx))
	t.Equal(uint64(2), t.subject.GetUserStats(mockCtx, seller).CreatedAuctions)
	t.Equal([]string{"AuctionCreated"}, t.events.Names(id))

	created := t.events.ByAuction(id)[0].Event.(domain.AuctionCreated)
	t.Equal(a.Escrow, created.Escrow)
}

func (t *testsuite) TestCreateAuctionPreconditions() {
	t.Require().NoError(t.assets.Mint(mockCtx, nft, "7", seller))

	tests := []struct {
		name   string
		caller domain.Address
		params registry.CreateParams
		expErr error
	}{
		{
			name:   "not owner of asset",
			caller: buyer,
			params: registry.CreateParams{AssetContract: nft, AssetId: "7", Duration: time.Hour, QuoteToken: usdc},
			expErr: domain.ErrNotAssetOwner,
		},
		{
			name:   "asset does not exist",
			caller: seller,
			params: registry.CreateParams{AssetContract: nft, AssetId: "8", Duration: time.Hour, QuoteToken: usdc},
			expErr: domain.ErrNotAssetOwner,
		},
		{
			name:   "unsupported quote token",
			caller: seller,
			params: registry.CreateParams{AssetContract: nft, AssetId: "7", Duration: time.Hour, QuoteToken: unlisted},
			expErr: domain.ErrQuoteTokenNotSupported,
		},
		{
			name:   "zero duration",
			caller: seller,
			params: registry.CreateParams{AssetContract: nft, AssetId: "7", QuoteToken: usdc},
			expErr: domain.ErrInvalidDuration,
		},
		{
			name:   "negative duration",
			caller: seller,
			params: registry.CreateParams{AssetContract: nft, AssetId: "7", Duration: -time.Second, QuoteToken: usdc},
			expErr: domain.ErrInvalidDuration,
		},
		{
			name:   "invalid contract",
			caller: seller,
			params: registry.CreateParams{AssetContract: "nft", AssetId: "7", Duration: time.Hour, QuoteToken: usdc},
			expErr: domain.ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		_, err := t.subject.CreateAuction(mockCtx, tt.caller, tt.params)
		t.ErrorIs(err, tt.expErr, tt.name)
	}
	t.Equal(uint64(0), t.subject.GetAuctionsCount(mockCtx))
	n, _ := t.repo.Count(mockCtx)
	t.Equal(0, n)
}

func (t *testsuite) TestRecordSettlement() {
	id := t.create(seller, usdc)

	t.ErrorIs(t.subject.RecordSettlement(mockCtx, id, seller, buyer, big.NewInt(0)), domain.ErrBadParamInput)
	t.ErrorIs(t.subject.RecordSettlement(mockCtx, "missing", seller, buyer, ether), domain.ErrUnknownAuction)
	t.ErrorIs(t.subject.RecordSettlement(mockCtx, id, buyer, buyer, ether), domain.ErrUnauthorized)
	t.Equal(0, t.subject.GetFactoryStats(mockCtx).TotalTradingVolume.Sign())

	t.NoError(t.subject.RecordSettlement(mockCtx, id, seller, buyer, ether))
	t.ErrorIs(t.subject.RecordSettlement(mockCtx, id, seller, buyer, ether), domain.ErrAlreadyReported)

	stats := t.subject.GetFactoryStats(mockCtx)
	t.Equal(0, ether.Cmp(stats.TotalTradingVolume))
	t.Equal(recipient, stats.PlatformFeeRecipient)
	t.Equal(0, ether.Cmp(t.subject.GetUserStats(mockCtx, seller).TradingVolume))
	t.Equal(0, ether.Cmp(t.subject.GetUserStats(mockCtx, buyer).TradingVolume))
	t.Equal(uint64(0), t.subject.GetUserStats(mockCtx, buyer).CreatedAuctions)

	// returned stats are copies
	stats.TotalTradingVolume.SetInt64(1)
	t.Equal(0, ether.Cmp(t.subject.GetFactoryStats(mockCtx).TotalTradingVolume))
}

func (t *testsuite) TestV2OnlyBeforeUpgrade() {
	_, err := t.subject.UpdateUserLevel(mockCtx, seller)
	t.ErrorIs(err, domain.ErrUnsupportedVersion)
	_, _, err = t.subject.GetUserLevelAndDiscount(mockCtx, seller)
	t.ErrorIs(err, domain.ErrUnsupportedVersion)
	_, err = t.subject.GetUserFullInfo(mockCtx, seller)
	t.ErrorIs(err, domain.ErrUnsupportedVersion)
	_, err = t.subject.GetPlatformStats(mockCtx)
	t.ErrorIs(err, domain.ErrUnsupportedVersion)

	bps, err := t.subject.FeeDiscountBps(mockCtx, seller)
	t.NoError(err)
	t.Equal(int64(0), bps)
}

func (t *testsuite) TestUpgradeOnlyOwner() {
	t.create(seller, usdc)

	t.ErrorIs(t.subject.Upgrade(mockCtx, seller, registry.SchemaV2), domain.ErrUnauthorized)
	t.Equal(registry.VersionV1, t.subject.Version(mockCtx))
	_, err := t.subject.GetPlatformStats(mockCtx)
	t.ErrorIs(err, domain.ErrUnsupportedVersion)

	t.ErrorIs(t.subject.Upgrade(mockCtx, owner, registry.SchemaVersion(3)), domain.ErrUnsupportedVersion)
	t.ErrorIs(t.subject.Upgrade(mockCtx, owner, registry.SchemaV1), domain.ErrUnsupportedVersion)
	t.Equal(registry.VersionV1, t.subject.Version(mockCtx))
}

func (t *testsuite) TestUpgradePreservesState() {
	first := t.create(seller, usdc)
	t.create(seller, domain.NativeToken)
	t.create(buyer, usdc)
	t.NoError(t.subject.RecordSettlement(mockCtx, first, seller, buyer, ether))

	factory := t.subject.GetFactoryStats(mockCtx)
	sellerStats := t.subject.GetUserStats(mockCtx, seller)
	buyerStats := t.subject.GetUserStats(mockCtx, buyer)
	auctions := t.subject.GetAuctions(mockCtx)
	tokens, err := t.tokens.List(mockCtx)
	t.Require().NoError(err)

	t.Equal(registry.VersionV1, t.subject.Version(mockCtx))
	t.NoError(t.subject.Upgrade(mockCtx, owner, registry.SchemaV2))
	t.Equal(registry.VersionV2, t.subject.Version(mockCtx))

	t.Equal(factory, t.subject.GetFactoryStats(mockCtx))
	t.Equal(sellerStats, t.subject.GetUserStats(mockCtx, seller))
	t.Equal(buyerStats, t.subject.GetUserStats(mockCtx, buyer))
	t.Equal(auctions, t.subject.GetAuctions(mockCtx))
	t.Equal(owner, t.subject.Owner(mockCtx))
	after, _ := t.tokens.List(mockCtx)
	t.Equal(tokens, after)

	// a settlement reported before the upgrade stays reported
	t.ErrorIs(t.subject.RecordSettlement(mockCtx, first, seller, buyer, ether), domain.ErrAlreadyReported)

	upgraded := t.events.All()
	last := upgraded[len(upgraded)-1].Event.(domain.RegistryUpgraded)
	t.Equal(domain.RegistryUpgraded{From: registry.VersionV1, To: registry.VersionV2}, last)

	t.ErrorIs(t.subject.Upgrade(mockCtx, owner, registry.SchemaV2), domain.ErrUnsupportedVersion)
	t.Equal(registry.VersionV2, t.subject.Version(mockCtx))
}

func (t *testsuite) TestUpgradeToCurrentSchema() {
	before := len(t.events.All())

	// same schema is refused before any migration is attempted
	t.Equal(domain.ErrUnsupportedVersion, t.subject.Upgrade(mockCtx, owner, registry.SchemaV1))
	t.Len(t.events.All(), before)

	t.Require().NoError(t.subject.Upgrade(mockCtx, owner, registry.SchemaV2))
	emitted := len(t.events.All())

	t.Equal(domain.ErrUnsupportedVersion, t.subject.Upgrade(mockCtx, owner, registry.SchemaV2))
	t.ErrorIs(t.subject.Upgrade(mockCtx, owner, registry.SchemaV1), domain.ErrStorageIncompatible)
	t.Equal(registry.VersionV2, t.subject.Version(mockCtx))
	t.Len(t.events.All(), emitted)
}

func (t *testsuite) TestLevels() {
	t.NoError(t.subject.Upgrade(mockCtx, owner, registry.SchemaV2))

	_, err := t.subject.UpdateUserLevel(mockCtx, "bad")
	t.ErrorIs(err, domain.ErrInvalidAddress)

	level, bps, err := t.subject.GetUserLevelAndDiscount(mockCtx, seller)
	t.NoError(err)
	t.Equal(uint8(0), level)
	t.Equal(int64(0), bps)

	level, err = t.subject.UpdateUserLevel(mockCtx, seller)
	t.NoError(err)
	t.Equal(uint8(1), level)
	_, bps, _ = t.subject.GetUserLevelAndDiscount(mockCtx, seller)
	t.Equal(int64(0), bps)

	steps := []struct {
		trades   int
		level    uint8
		discount int64
	}{
		{5, 2, 500},
		{20, 3, 1000},
		{50, 4, 2000},
	}
	done := 0
	for _, s := range steps {
		for ; done < s.trades; done++ {
			id := t.create(seller, usdc)
			t.Require().NoError(t.subject.RecordSettlement(mockCtx, id, seller, buyer, ether))
		}

		level, err := t.subject.UpdateUserLevel(mockCtx, seller)
		t.NoError(err)
		t.Equal(s.level, level)

		level, bps, err := t.subject.GetUserLevelAndDiscount(mockCtx, seller)
		t.NoError(err)
		t.Equal(s.level, level)
		t.Equal(s.discount, bps)

		fee, err := t.subject.FeeDiscountBps(mockCtx, seller)
		t.NoError(err)
		t.Equal(s.discount, fee)
	}

	info, err := t.subject.GetUserFullInfo(mockCtx, seller)
	t.NoError(err)
	t.Equal(uint8(4), info.Level)
	t.Equal(int64(2000), info.DiscountBps)
	t.Equal(uint64(50), info.Stats.SuccessfulTrades)
	t.Equal(uint64(50), info.Stats.CreatedAuctions)

	// the winner is counted as well, but its level waits for an explicit update
	buyerInfo, _ := t.subject.GetUserFullInfo(mockCtx, buyer)
	t.Equal(uint64(50), buyerInfo.Stats.SuccessfulTrades)
	t.Equal(uint8(0), buyerInfo.Level)
}

func (t *testsuite) TestPlatformStats() {
	t.NoError(t.subject.Upgrade(mockCtx, owner, registry.SchemaV2))

	empty, err := t.subject.GetPlatformStats(mockCtx)
	t.NoError(err)
	t.Equal(uint64(0), empty.SuccessRate)

	ids := []domain.AuctionId{}
	for i := 0; i < 4; i++ {
		ids = append(ids, t.create(seller, usdc))
	}
	t.NoError(t.subject.RecordSettlement(mockCtx, ids[0], seller, buyer, ether))

	ps, err := t.subject.GetPlatformStats(mockCtx)
	t.NoError(err)
	t.Equal(uint64(4), ps.TotalAuctions)
	t.Equal(uint64(1), ps.TotalSuccessful)
	t.Equal(uint64(25), ps.SuccessRate)
	t.Equal(0, ether.Cmp(ps.TotalVolume))
}

func (t *testsuite) TestCalculateFeeForAmount() {
	t.Equal(0, big.NewInt(50000000000000000).Cmp(t.subject.CalculateFeeForAmount(ether)))
	t.Equal(0, t.subject.CalculateFeeForAmount(big.NewInt(0)).Sign())
}
