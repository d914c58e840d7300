package domain

import (
	"math/big"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

// AssetLedger is the ownership ledger of non-fungible assets
type AssetLedger interface {
	OwnerOf(c ctx.Ctx, contract Address, id TokenId) (Address, error)
	// TransferFrom moves id from `from` to `to`, operator must be the owner or approved
	TransferFrom(c ctx.Ctx, operator, from, to Address, contract Address, id TokenId) error
}

// FundsLedger holds native and fungible token balances.
// NativeToken addresses the native currency.
type FundsLedger interface {
	Decimals(c ctx.Ctx, token Address) (uint8, error)
	BalanceOf(c ctx.Ctx, token, owner Address) (*big.Int, error)
	Transfer(c ctx.Ctx, token, from, to Address, amount *big.Int) error
	// TransferFrom spends spender's allowance over from's balance
	TransferFrom(c ctx.Ctx, token, spender, from, to Address, amount *big.Int) error
}
