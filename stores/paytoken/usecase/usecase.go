package usecase

import (
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
)

const nativeSymbol = "ETH"

type impl struct {
	owner  domain.Address
	repo   domain.PayTokenRepo
	funds  domain.FundsLedger
	events domain.EventSink
}

// New returns the token-support table. Only owner may configure it.
func New(owner domain.Address, repo domain.PayTokenRepo, funds domain.FundsLedger, events domain.EventSink) domain.TokenRegistry {
	return &impl{
		owner:  owner,
		repo:   repo,
		funds:  funds,
		events: events,
	}
}

func (im *impl) AddQuoteToken(c ctx.Ctx, caller domain.Address, token domain.Address, priceFeed domain.Address, symbol string) error {
	if !caller.Equals(im.owner) {
		return domain.ErrUnauthorized
	}
	if !token.IsValid() || (!priceFeed.IsEmpty() && !priceFeed.IsValid()) {
		return domain.ErrInvalidAddress
	}

	decimals, err := im.funds.Decimals(c, token)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "token": token}).Error("funds.Decimals failed")
		return err
	}

	// overwriting an existing entry is allowed
	if err := im.repo.Upsert(c, &domain.QuoteToken{
		Address:   token,
		Supported: true,
		PriceFeed: priceFeed,
		Symbol:    symbol,
		Decimals:  decimals,
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "token": token}).Error("repo.Upsert failed")
		return err
	}

	im.events.Emit(c, domain.QuoteTokenAdded{Token: token.ToLower(), PriceFeed: priceFeed.ToLower(), Symbol: symbol})
	return nil
}

// IsSupported is always true for the native currency
func (im *impl) IsSupported(c ctx.Ctx, token domain.Address) bool {
	if token.IsNative() {
		return true
	}
	t, err := im.repo.FindOne(c, token)
	return err == nil && t.Supported
}

func (im *impl) Get(c ctx.Ctx, token domain.Address) (*domain.QuoteToken, error) {
	t, err := im.repo.FindOne(c, token)
	if err == domain.ErrNotFound && token.IsNative() {
		return &domain.QuoteToken{
			Address:   domain.NativeToken,
			Supported: true,
			Symbol:    nativeSymbol,
			Decimals:  domain.NativeDecimals,
		}, nil
	} else if err != nil {
		return nil, err
	}
	if !t.Supported {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (im *impl) List(c ctx.Ctx) ([]domain.QuoteToken, error) {
	return im.repo.FindAll(c)
}
