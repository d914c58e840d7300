package repository

import (
	"sort"
	"sync"

	bCtx "github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type payTokenMemRepo struct {
	mu     sync.RWMutex
	tokens map[domain.Address]domain.QuoteToken
}

func NewPayTokenRepo() domain.PayTokenRepo {
	return &payTokenMemRepo{
		tokens: make(map[domain.Address]domain.QuoteToken),
	}
}

// FindOne returns ErrNotFound when the token was never configured
func (r *payTokenMemRepo) FindOne(ctx bCtx.Ctx, tokenAddress domain.Address) (*domain.QuoteToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[tokenAddress.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *payTokenMemRepo) FindAll(ctx bCtx.Ctx) ([]domain.QuoteToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]domain.QuoteToken, 0, len(r.tokens))
	for _, t := range r.tokens {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Address < res[j].Address })
	return res, nil
}

func (r *payTokenMemRepo) Upsert(ctx bCtx.Ctx, payToken *domain.QuoteToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *payToken
	t.Address = t.Address.ToLower()
	t.PriceFeed = t.PriceFeed.ToLower()
	r.tokens[t.Address] = t
	return nil
}
