package repository

import (
	"sync"

	bCtx "github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
)

type entry struct {
	mu sync.Mutex
	a  *auction.Auction
}

// auctionMemRepo is an arena of auctions keyed by handle. Each entry has its own lock so
// transitions of one auction serialize while different auctions proceed independently.
type auctionMemRepo struct {
	mu      sync.RWMutex
	entries map[domain.AuctionId]*entry
	order   []domain.AuctionId
}

func NewAuctionRepo() auction.Repo {
	return &auctionMemRepo{
		entries: make(map[domain.AuctionId]*entry),
	}
}

func (r *auctionMemRepo) Insert(ctx bCtx.Ctx, a *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[a.Id]; ok {
		return domain.ErrConflict
	}
	r.entries[a.Id] = &entry{a: a.Clone()}
	r.order = append(r.order, a.Id)
	return nil
}

func (r *auctionMemRepo) get(id domain.AuctionId) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrUnknownAuction
	}
	return e, nil
}

func (r *auctionMemRepo) FindOne(ctx bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	e, err := r.get(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.a.Clone(), nil
}

// FindAll returns copies in creation order
func (r *auctionMemRepo) FindAll(ctx bCtx.Ctx) ([]*auction.Auction, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	r.mu.RUnlock()

	res := make([]*auction.Auction, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		res = append(res, e.a.Clone())
		e.mu.Unlock()
	}
	return res, nil
}

func (r *auctionMemRepo) Update(ctx bCtx.Ctx, id domain.AuctionId, fn func(a *auction.Auction) error) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	draft := e.a.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	e.a = draft
	return nil
}

func (r *auctionMemRepo) Count(ctx bCtx.Ctx) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order), nil
}
