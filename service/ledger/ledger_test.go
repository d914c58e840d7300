package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
)

var (
	mockCtx = ctx.Background()

	nft     = domain.Address("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	usdc    = domain.Address("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	alice   = domain.Address("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob     = domain.Address("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	charlie = domain.Address("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

type ledgerSuite struct {
	suite.Suite
	assets *Assets
	funds  *Funds
}

func TestLedger(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) SetupTest() {
	s.assets = NewAssets()
	s.funds = NewFunds()
}

func (s *ledgerSuite) TestMint() {
	s.NoError(s.assets.Mint(mockCtx, nft, "0", alice))
	s.Equal(domain.ErrConflict, s.assets.Mint(mockCtx, nft, "0", bob))
	s.Equal(domain.ErrInvalidAddress, s.assets.Mint(mockCtx, nft, "1", domain.EmptyAddress))

	owner, err := s.assets.OwnerOf(mockCtx, domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3"), "0")
	s.NoError(err)
	s.True(owner.Equals(alice))

	_, err = s.assets.OwnerOf(mockCtx, nft, "404")
	s.Equal(domain.ErrNotFound, err)
}

func (s *ledgerSuite) TestMintBatchAllOrNothing() {
	s.NoError(s.assets.Mint(mockCtx, nft, "2", bob))
	s.Equal(domain.ErrConflict, s.assets.MintBatch(mockCtx, nft, []domain.TokenId{"1", "2", "3"}, alice))

	_, err := s.assets.OwnerOf(mockCtx, nft, "1")
	s.Equal(domain.ErrNotFound, err)

	s.NoError(s.assets.MintBatch(mockCtx, nft, []domain.TokenId{"1", "3"}, alice))
	owner, err := s.assets.OwnerOf(mockCtx, nft, "3")
	s.NoError(err)
	s.True(owner.Equals(alice))
}

func (s *ledgerSuite) TestTransferFrom() {
	s.NoError(s.assets.Mint(mockCtx, nft, "0", alice))

	s.Equal(domain.ErrNotApproved, s.assets.TransferFrom(mockCtx, bob, alice, bob, nft, "0"), "not approved")
	s.Equal(domain.ErrNotApproved, s.assets.Approve(mockCtx, bob, nft, "0", bob), "only owner approves")

	s.NoError(s.assets.Approve(mockCtx, alice, nft, "0", charlie))
	s.NoError(s.assets.TransferFrom(mockCtx, charlie, alice, bob, nft, "0"))
	owner, _ := s.assets.OwnerOf(mockCtx, nft, "0")
	s.True(owner.Equals(bob))

	// approval is cleared by the transfer
	s.Equal(domain.ErrNotApproved, s.assets.TransferFrom(mockCtx, charlie, bob, alice, nft, "0"))
	s.Equal(domain.ErrNotApproved, s.assets.TransferFrom(mockCtx, bob, alice, bob, nft, "0"), "from is not the owner")

	s.NoError(s.assets.SetApprovalForAll(mockCtx, bob, nft, charlie, true))
	s.NoError(s.assets.TransferFrom(mockCtx, charlie, bob, alice, nft, "0"))
	owner, _ = s.assets.OwnerOf(mockCtx, nft, "0")
	s.True(owner.Equals(alice))
}

func (s *ledgerSuite) TestFundsTransfer() {
	s.NoError(s.funds.Mint(mockCtx, domain.NativeToken, alice, big.NewInt(100)))

	s.Equal(domain.ErrInsufficientFunds, s.funds.Transfer(mockCtx, domain.NativeToken, alice, bob, big.NewInt(101)))
	s.NoError(s.funds.Transfer(mockCtx, domain.NativeToken, alice, bob, big.NewInt(40)))

	a, err := s.funds.BalanceOf(mockCtx, domain.NativeToken, alice)
	s.NoError(err)
	b, err := s.funds.BalanceOf(mockCtx, domain.NativeToken, bob)
	s.NoError(err)
	s.Equal(big.NewInt(60), a)
	s.Equal(big.NewInt(40), b)

	// returned balances are copies
	a.SetInt64(0)
	a, _ = s.funds.BalanceOf(mockCtx, domain.NativeToken, alice)
	s.Equal(big.NewInt(60), a)
}

func (s *ledgerSuite) TestFundsTransferFrom() {
	s.Equal(domain.ErrUnknownToken, s.funds.Mint(mockCtx, usdc, alice, big.NewInt(1)))
	s.NoError(s.funds.RegisterToken(mockCtx, usdc, 6))
	s.Equal(domain.ErrConflict, s.funds.RegisterToken(mockCtx, usdc, 6))

	d, err := s.funds.Decimals(mockCtx, usdc)
	s.NoError(err)
	s.Equal(uint8(6), d)
	d, err = s.funds.Decimals(mockCtx, domain.NativeToken)
	s.NoError(err)
	s.Equal(uint8(domain.NativeDecimals), d)

	s.NoError(s.funds.Mint(mockCtx, usdc, alice, big.NewInt(1000000)))
	s.Equal(domain.ErrInsufficientAllowance, s.funds.TransferFrom(mockCtx, usdc, charlie, alice, bob, big.NewInt(1)))

	s.NoError(s.funds.Approve(mockCtx, usdc, alice, charlie, big.NewInt(500000)))
	s.NoError(s.funds.TransferFrom(mockCtx, usdc, charlie, alice, bob, big.NewInt(300000)))
	s.Equal(big.NewInt(200000), s.funds.Allowance(mockCtx, usdc, alice, charlie))
	s.Equal(domain.ErrInsufficientAllowance, s.funds.TransferFrom(mockCtx, usdc, charlie, alice, bob, big.NewInt(200001)))

	// failed transfers keep the allowance
	s.NoError(s.funds.Approve(mockCtx, usdc, bob, charlie, big.NewInt(1000000000)))
	s.Equal(domain.ErrInsufficientFunds, s.funds.TransferFrom(mockCtx, usdc, charlie, bob, alice, big.NewInt(300001)))
	s.Equal(big.NewInt(1000000000), s.funds.Allowance(mockCtx, usdc, bob, charlie))
}
