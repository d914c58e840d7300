package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/service/eventlog"
	"github.com/xugejunllt/nft-auction-market/service/ledger"
	"github.com/xugejunllt/nft-auction-market/stores/paytoken/repository"
)

var (
	mockCtx = ctx.Background()

	owner    = domain.Address("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	stranger = domain.Address("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	usdc     = domain.Address("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	usdcFeed = domain.Address("0x8fE6C3c2B1A6a9b2A12ffe5D1D2A9eE7B0f7B1c4")
	ethFeed  = domain.Address("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419")
)

type testsuite struct {
	suite.Suite
	events  *eventlog.Log
	subject domain.TokenRegistry
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	funds := ledger.NewFunds()
	t.Require().NoError(funds.RegisterToken(mockCtx, usdc, 6))
	t.events = eventlog.New(domain.SystemClock)
	t.subject = New(owner, repository.NewPayTokenRepo(), funds, t.events)
}

func (t *testsuite) TestAddQuoteTokenOwnerOnly() {
	t.Equal(domain.ErrUnauthorized, t.subject.AddQuoteToken(mockCtx, stranger, usdc, usdcFeed, "USDC"))
	t.False(t.subject.IsSupported(mockCtx, usdc))
	t.Empty(t.events.All())
}

func (t *testsuite) TestAddQuoteToken() {
	t.NoError(t.subject.AddQuoteToken(mockCtx, owner, usdc, usdcFeed, "USDC"))
	t.True(t.subject.IsSupported(mockCtx, domain.Address("0xE7F1725E7734CE288F8367E1BB143E90BB3F0512")))

	tok, err := t.subject.Get(mockCtx, usdc)
	t.NoError(err)
	t.Equal(uint8(6), tok.Decimals)
	t.Equal("USDC", tok.Symbol)
	t.True(tok.PriceFeed.Equals(usdcFeed))
	t.Equal([]string{"QuoteTokenAdded"}, t.events.Names(""))

	// idempotent overwrite
	t.NoError(t.subject.AddQuoteToken(mockCtx, owner, usdc, ethFeed, "USDC.e"))
	tok, err = t.subject.Get(mockCtx, usdc)
	t.NoError(err)
	t.Equal("USDC.e", tok.Symbol)
	t.True(tok.PriceFeed.Equals(ethFeed))

	list, err := t.subject.List(mockCtx)
	t.NoError(err)
	t.Len(list, 1)
}

func (t *testsuite) TestAddQuoteTokenInvalid() {
	t.Equal(domain.ErrInvalidAddress, t.subject.AddQuoteToken(mockCtx, owner, "usdc", usdcFeed, "USDC"))
	t.Equal(domain.ErrInvalidAddress, t.subject.AddQuoteToken(mockCtx, owner, usdc, "feed", "USDC"))
	t.Equal(domain.ErrUnknownToken, t.subject.AddQuoteToken(mockCtx, owner, stranger, usdcFeed, "???"))
}

func (t *testsuite) TestGetUnsupported() {
	_, err := t.subject.Get(mockCtx, usdc)
	t.Equal(domain.ErrNotFound, err)
}

func (t *testsuite) TestNative() {
	t.True(t.subject.IsSupported(mockCtx, domain.NativeToken))

	tok, err := t.subject.Get(mockCtx, domain.NativeToken)
	t.NoError(err)
	t.Equal(uint8(domain.NativeDecimals), tok.Decimals)
	t.True(tok.PriceFeed.IsEmpty())

	t.NoError(t.subject.AddQuoteToken(mockCtx, owner, domain.NativeToken, ethFeed, "ETH"))
	tok, err = t.subject.Get(mockCtx, domain.NativeToken)
	t.NoError(err)
	t.True(tok.PriceFeed.Equals(ethFeed))
}
