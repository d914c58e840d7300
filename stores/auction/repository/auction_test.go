package repository

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	repo auction.Repo
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.repo = NewAuctionRepo()
}

func newAuction(id domain.AuctionId) *auction.Auction {
	return &auction.Auction{
		Id:           id,
		HighestBid:   big.NewInt(0),
		Withdrawable: map[domain.Address]*big.Int{},
	}
}

func (t *testsuite) TestInsertAndFind() {
	t.NoError(t.repo.Insert(mockCtx, newAuction("b")))
	t.NoError(t.repo.Insert(mockCtx, newAuction("a")))
	t.Equal(domain.ErrConflict, t.repo.Insert(mockCtx, newAuction("a")))

	_, err := t.repo.FindOne(mockCtx, "c")
	t.Equal(domain.ErrUnknownAuction, err)

	all, err := t.repo.FindAll(mockCtx)
	t.NoError(err)
	t.Len(all, 2)
	t.Equal(domain.AuctionId("b"), all[0].Id)
	t.Equal(domain.AuctionId("a"), all[1].Id)

	n, err := t.repo.Count(mockCtx)
	t.NoError(err)
	t.Equal(2, n)
}

func (t *testsuite) TestFindReturnsCopy() {
	t.NoError(t.repo.Insert(mockCtx, newAuction("a")))

	a, err := t.repo.FindOne(mockCtx, "a")
	t.NoError(err)
	a.HighestBid.SetInt64(42)
	a.Withdrawable["0x1"] = big.NewInt(1)

	a, err = t.repo.FindOne(mockCtx, "a")
	t.NoError(err)
	t.Equal(0, a.HighestBid.Sign())
	t.Empty(a.Withdrawable)
}

func (t *testsuite) TestUpdateRollsBack() {
	t.NoError(t.repo.Insert(mockCtx, newAuction("a")))
	errFn := errors.New("fn failed")

	t.Equal(errFn, t.repo.Update(mockCtx, "a", func(a *auction.Auction) error {
		a.HighestBid.SetInt64(10)
		a.Ended = true
		return errFn
	}))
	a, _ := t.repo.FindOne(mockCtx, "a")
	t.Equal(0, a.HighestBid.Sign())
	t.False(a.Ended)

	t.NoError(t.repo.Update(mockCtx, "a", func(a *auction.Auction) error {
		a.HighestBid.SetInt64(10)
		return nil
	}))
	a, _ = t.repo.FindOne(mockCtx, "a")
	t.Equal(big.NewInt(10), a.HighestBid)

	t.Equal(domain.ErrUnknownAuction, t.repo.Update(mockCtx, "x", func(a *auction.Auction) error { return nil }))
}

func (t *testsuite) TestUpdateSerializes() {
	t.NoError(t.repo.Insert(mockCtx, newAuction("a")))

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.NoError(t.repo.Update(mockCtx, "a", func(a *auction.Auction) error {
				a.HighestBid.Add(a.HighestBid, big.NewInt(1))
				return nil
			}))
		}()
	}
	wg.Wait()

	a, _ := t.repo.FindOne(mockCtx, "a")
	t.Equal(big.NewInt(100), a.HighestBid)
}
