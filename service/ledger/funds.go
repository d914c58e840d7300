package ledger

import (
	"math/big"
	"sync"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type balanceKey struct {
	token domain.Address
	owner domain.Address
}

type allowanceKey struct {
	token   domain.Address
	owner   domain.Address
	spender domain.Address
}

// Funds is an in-memory ledger of the native currency and ERC20 style tokens.
// The native currency is registered at NativeToken with NativeDecimals.
type Funds struct {
	mu         sync.RWMutex
	decimals   map[domain.Address]uint8
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
}

func NewFunds() *Funds {
	return &Funds{
		decimals: map[domain.Address]uint8{
			domain.NativeToken: domain.NativeDecimals,
		},
		balances:   make(map[balanceKey]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
	}
}

func (l *Funds) RegisterToken(c ctx.Ctx, token domain.Address, decimals uint8) error {
	if !token.IsValid() || token.IsNative() {
		return domain.ErrInvalidAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.decimals[token.ToLower()]; ok {
		return domain.ErrConflict
	}
	l.decimals[token.ToLower()] = decimals
	return nil
}

func (l *Funds) Decimals(c ctx.Ctx, token domain.Address) (uint8, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	d, ok := l.decimals[token.ToLower()]
	if !ok {
		return 0, domain.ErrUnknownToken
	}
	return d, nil
}

func (l *Funds) Mint(c ctx.Ctx, token, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.decimals[token.ToLower()]; !ok {
		return domain.ErrUnknownToken
	}
	k := balanceKey{token.ToLower(), to.ToLower()}
	l.balances[k] = new(big.Int).Add(l.balanceOf(k), amount)
	return nil
}

// Approve sets, not adds, spender's allowance over owner's balance
func (l *Funds) Approve(c ctx.Ctx, token, owner, spender domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.decimals[token.ToLower()]; !ok {
		return domain.ErrUnknownToken
	}
	l.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}] = new(big.Int).Set(amount)
	return nil
}

func (l *Funds) Allowance(c ctx.Ctx, token, owner, spender domain.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return domain.CopyBig(l.allowances[allowanceKey{token.ToLower(), owner.ToLower(), spender.ToLower()}])
}

func (l *Funds) BalanceOf(c ctx.Ctx, token, owner domain.Address) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.decimals[token.ToLower()]; !ok {
		return nil, domain.ErrUnknownToken
	}
	return domain.CopyBig(l.balanceOf(balanceKey{token.ToLower(), owner.ToLower()})), nil
}

func (l *Funds) Transfer(c ctx.Ctx, token, from, to domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(c, token, from, to, amount)
}

func (l *Funds) TransferFrom(c ctx.Ctx, token, spender, from, to domain.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ak := allowanceKey{token.ToLower(), from.ToLower(), spender.ToLower()}
	allowance := domain.CopyBig(l.allowances[ak])
	if allowance.Cmp(amount) < 0 {
		return domain.ErrInsufficientAllowance
	}
	if err := l.transfer(c, token, from, to, amount); err != nil {
		return err
	}
	l.allowances[ak] = allowance.Sub(allowance, amount)
	return nil
}

func (l *Funds) transfer(c ctx.Ctx, token, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	if _, ok := l.decimals[token.ToLower()]; !ok {
		return domain.ErrUnknownToken
	}

	fk := balanceKey{token.ToLower(), from.ToLower()}
	tk := balanceKey{token.ToLower(), to.ToLower()}
	bal := l.balanceOf(fk)
	if bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}

	l.balances[fk] = new(big.Int).Sub(bal, amount)
	l.balances[tk] = new(big.Int).Add(l.balanceOf(tk), amount)
	c.WithFields(log.Fields{"token": token, "from": from, "to": to, "amount": amount.String()}).Debug("funds transferred")
	return nil
}

func (l *Funds) balanceOf(k balanceKey) *big.Int {
	if v, ok := l.balances[k]; ok {
		return v
	}
	return domain.Big0
}
