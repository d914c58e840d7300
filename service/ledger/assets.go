package ledger

import (
	"sync"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type assetKey struct {
	contract domain.Address
	id       domain.TokenId
}

type operatorKey struct {
	contract domain.Address
	owner    domain.Address
	operator domain.Address
}

// Assets is an in-memory ERC721 style ownership ledger
type Assets struct {
	mu        sync.RWMutex
	owners    map[assetKey]domain.Address
	approvals map[assetKey]domain.Address
	operators map[operatorKey]bool
}

func NewAssets() *Assets {
	return &Assets{
		owners:    make(map[assetKey]domain.Address),
		approvals: make(map[assetKey]domain.Address),
		operators: make(map[operatorKey]bool),
	}
}

func keyOf(contract domain.Address, id domain.TokenId) assetKey {
	return assetKey{contract.ToLower(), id}
}

func (l *Assets) Mint(c ctx.Ctx, contract domain.Address, id domain.TokenId, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mint(c, contract, id, to)
}

// MintBatch mints all ids or none
func (l *Assets) MintBatch(c ctx.Ctx, contract domain.Address, ids []domain.TokenId, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range ids {
		if _, ok := l.owners[keyOf(contract, id)]; ok {
			return domain.ErrConflict
		}
	}
	for _, id := range ids {
		if err := l.mint(c, contract, id, to); err != nil {
			return err
		}
	}
	return nil
}

func (l *Assets) mint(c ctx.Ctx, contract domain.Address, id domain.TokenId, to domain.Address) error {
	if !to.IsValid() || to.Equals(domain.EmptyAddress) {
		return domain.ErrInvalidAddress
	}
	k := keyOf(contract, id)
	if _, ok := l.owners[k]; ok {
		return domain.ErrConflict
	}
	l.owners[k] = to.ToLower()
	c.WithFields(log.Fields{"contract": contract, "id": id, "to": to}).Debug("asset minted")
	return nil
}

// Approve lets spender transfer one asset, only the owner may call it
func (l *Assets) Approve(c ctx.Ctx, owner domain.Address, contract domain.Address, id domain.TokenId, spender domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := keyOf(contract, id)
	cur, ok := l.owners[k]
	if !ok {
		return domain.ErrNotFound
	}
	if !cur.Equals(owner) {
		return domain.ErrNotApproved
	}
	l.approvals[k] = spender.ToLower()
	return nil
}

func (l *Assets) SetApprovalForAll(c ctx.Ctx, owner, contract, operator domain.Address, approved bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operators[operatorKey{contract.ToLower(), owner.ToLower(), operator.ToLower()}] = approved
	return nil
}

func (l *Assets) OwnerOf(c ctx.Ctx, contract domain.Address, id domain.TokenId) (domain.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[keyOf(contract, id)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (l *Assets) TransferFrom(c ctx.Ctx, operator, from, to domain.Address, contract domain.Address, id domain.TokenId) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := keyOf(contract, id)
	owner, ok := l.owners[k]
	if !ok {
		return domain.ErrNotFound
	}
	if !owner.Equals(from) {
		return domain.ErrNotApproved
	}
	if !to.IsValid() || to.Equals(domain.EmptyAddress) {
		return domain.ErrInvalidAddress
	}

	allowed := operator.Equals(owner) ||
		l.approvals[k].Equals(operator) ||
		l.operators[operatorKey{contract.ToLower(), owner, operator.ToLower()}]
	if !allowed {
		return domain.ErrNotApproved
	}

	delete(l.approvals, k)
	l.owners[k] = to.ToLower()
	c.WithFields(log.Fields{"contract": contract, "id": id, "from": from, "to": to}).Debug("asset transferred")
	return nil
}
