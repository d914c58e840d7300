package usecase

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/base/metrics"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
)

const defaultSettleWorkers = 8

var errSettleResultMissing = errors.New("settle result missing")

type AuctionUseCaseCfg struct {
	Repo     auction.Repo
	Registry auction.Registry
	Fees     domain.FeeSchedule
	Oracle   domain.PriceOracle
	Assets   domain.AssetLedger
	Funds    domain.FundsLedger
	Events   domain.EventSink
	Clock    domain.Clock
	// SettleWorkers bounds the concurrency of SettleExpired
	SettleWorkers int
}

type impl struct {
	repo          auction.Repo
	registry      auction.Registry
	fees          domain.FeeSchedule
	oracle        domain.PriceOracle
	assets        domain.AssetLedger
	funds         domain.FundsLedger
	events        domain.EventSink
	clock         domain.Clock
	settleWorkers int
	metrics       metrics.Service
}

// New creates the auction usecase
func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	workers := cfg.SettleWorkers
	if workers <= 0 {
		workers = defaultSettleWorkers
	}
	return &impl{
		repo:          cfg.Repo,
		registry:      cfg.Registry,
		fees:          cfg.Fees,
		oracle:        cfg.Oracle,
		assets:        cfg.Assets,
		funds:         cfg.Funds,
		events:        cfg.Events,
		clock:         cfg.Clock,
		settleWorkers: workers,
		metrics:       metrics.New("auction"),
	}
}

// compensator undoes ledger interactions of a transition that fails half way
type compensator struct {
	c     ctx.Ctx
	undos []func() error
}

func (cp *compensator) add(undo func() error) {
	cp.undos = append(cp.undos, undo)
}

func (cp *compensator) rollback() {
	for i := len(cp.undos) - 1; i >= 0; i-- {
		if err := cp.undos[i](); err != nil {
			cp.c.WithField("err", err).Error("compensation failed")
		}
	}
}

func (im *impl) Escrow(c ctx.Ctx, id domain.AuctionId, caller domain.Address) error {
	var escrowed *auction.Auction
	err := im.repo.Update(c, id, func(a *auction.Auction) error {
		if !caller.Equals(a.Seller) {
			return domain.ErrOnlySeller
		}
		if a.Ended || !im.clock.Now().Before(a.EndTime) {
			return domain.ErrAuctionEnded
		}
		if a.Escrowed {
			return domain.ErrAlreadyEscrowed
		}

		a.Escrowed = true

		if err := im.assets.TransferFrom(c, a.Escrow, a.Seller, a.Escrow, a.AssetContract, a.AssetId); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id}).Error("assets.TransferFrom failed")
			return err
		}
		escrowed = a
		return nil
	})
	if err != nil {
		return err
	}

	im.events.Emit(c, domain.AssetEscrowed{Auction: id, Seller: escrowed.Seller})
	return nil
}

func (im *impl) Bid(c ctx.Ctx, id domain.AuctionId, bidder domain.Address, amount, payment *big.Int) error {
	if amount == nil {
		return domain.ErrInvalidNumberFormat
	}
	payment = domain.CopyBig(payment)

	err := im.repo.Update(c, id, func(a *auction.Auction) error {
		if a.Ended || !im.clock.Now().Before(a.EndTime) {
			return domain.ErrAuctionEnded
		}
		if !a.Escrowed {
			return domain.ErrNotEscrowed
		}
		if bidder.Equals(a.Seller) {
			return domain.ErrSellerCannotBid
		}
		if amount.Cmp(a.HighestBid) <= 0 {
			return domain.ErrBidTooLow
		}
		native := a.QuoteToken.IsNative()
		if native && payment.Cmp(amount) != 0 {
			return domain.ErrPaymentMismatch
		}
		if !native && payment.Sign() != 0 {
			return domain.ErrUnexpectedPayment
		}

		// effects before interactions, the displaced bid becomes withdrawable
		if a.HasBids() {
			prev := a.HighestBidder.ToLower()
			a.Withdrawable[prev] = new(big.Int).Add(domain.CopyBig(a.Withdrawable[prev]), a.HighestBid)
		}
		a.HighestBid = new(big.Int).Set(amount)
		a.HighestBidder = bidder.ToLower()

		var err error
		if native {
			err = im.funds.Transfer(c, a.QuoteToken, bidder, a.Escrow, amount)
		} else {
			err = im.funds.TransferFrom(c, a.QuoteToken, a.Escrow, bidder, a.Escrow, amount)
		}
		if err != nil {
			c.WithFields(log.Fields{"err": err, "id": id, "bidder": bidder, "amount": amount.String()}).Warn("pulling bid funds failed")
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	im.metrics.BumpSum("bid.count", 1)
	im.events.Emit(c, domain.BidPlaced{Auction: id, Bidder: bidder.ToLower(), Amount: new(big.Int).Set(amount)})
	return nil
}

func (im *impl) EndAuction(c ctx.Ctx, id domain.AuctionId) (*auction.Settlement, error) {
	var settlement *auction.Settlement
	err := im.repo.Update(c, id, func(a *auction.Auction) error {
		if a.Ended {
			return domain.ErrAlreadyEnded
		}
		if im.clock.Now().Before(a.EndTime) {
			return domain.ErrNotYetEnded
		}

		a.Ended = true

		if !a.HasBids() {
			settlement = &auction.Settlement{
				Auction:      id,
				Amount:       new(big.Int),
				Fee:          new(big.Int),
				SellerPayout: new(big.Int),
			}
			if !a.Escrowed {
				return nil
			}
			if err := im.assets.TransferFrom(c, a.Escrow, a.Escrow, a.Seller, a.AssetContract, a.AssetId); err != nil {
				c.WithFields(log.Fields{"err": err, "id": id}).Error("returning asset failed")
				return err
			}
			return nil
		}

		s, err := im.settle(c, a)
		if err != nil {
			return err
		}
		settlement = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.metrics.BumpSum("settle.count", 1, "sold", boolTag(settlement.Winner != ""))
	if settlement.Winner != "" {
		volume, _ := new(big.Float).SetInt(settlement.Amount).Float64()
		im.metrics.BumpSum("settle.volume", volume)
	}
	im.events.Emit(c, domain.AuctionEnded{Auction: id, Winner: settlement.Winner, Amount: new(big.Int).Set(settlement.Amount)})
	return settlement, nil
}

// settle disburses the winning bid and hands over the asset. Either every step
// applies or the completed ones are compensated.
func (im *impl) settle(c ctx.Ctx, a *auction.Auction) (*auction.Settlement, error) {
	amount := new(big.Int).Set(a.HighestBid)
	fee, err := im.feeFor(c, a.Seller, amount)
	if err != nil {
		return nil, err
	}
	payout := new(big.Int).Sub(amount, fee)
	recipient := im.registry.PlatformFeeRecipient(c)
	comp := &compensator{c: c}

	if err := im.funds.Transfer(c, a.QuoteToken, a.Escrow, a.Seller, payout); err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("paying seller failed")
		return nil, err
	}
	comp.add(func() error { return im.funds.Transfer(c, a.QuoteToken, a.Seller, a.Escrow, payout) })

	if fee.Sign() > 0 {
		if err := im.funds.Transfer(c, a.QuoteToken, a.Escrow, recipient, fee); err != nil {
			c.WithFields(log.Fields{"err": err, "id": a.Id, "recipient": recipient}).Error("paying fee failed")
			comp.rollback()
			return nil, err
		}
		comp.add(func() error { return im.funds.Transfer(c, a.QuoteToken, recipient, a.Escrow, fee) })
	}

	if err := im.assets.TransferFrom(c, a.Escrow, a.Escrow, a.HighestBidder, a.AssetContract, a.AssetId); err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("delivering asset failed")
		comp.rollback()
		return nil, err
	}
	comp.add(func() error {
		return im.assets.TransferFrom(c, a.HighestBidder, a.HighestBidder, a.Escrow, a.AssetContract, a.AssetId)
	})

	if err := im.registry.RecordSettlement(c, a.Id, a.Seller, a.HighestBidder, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("registry.RecordSettlement failed")
		comp.rollback()
		return nil, err
	}

	return &auction.Settlement{
		Auction:      a.Id,
		Winner:       a.HighestBidder,
		Amount:       amount,
		Fee:          fee,
		SellerPayout: payout,
	}, nil
}

// feeFor applies the seller's level discount on top of the fee schedule
func (im *impl) feeFor(c ctx.Ctx, seller domain.Address, amount *big.Int) (*big.Int, error) {
	fee := im.fees.FeeFor(amount)

	discountBps, err := im.registry.FeeDiscountBps(c, seller)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "seller": seller}).Error("registry.FeeDiscountBps failed")
		return nil, err
	}
	if discountBps <= 0 {
		return fee, nil
	}

	discount := new(big.Int).Mul(fee, big.NewInt(discountBps))
	discount.Quo(discount, domain.BpsDenom)
	return fee.Sub(fee, discount), nil
}

func (im *impl) CancelAuction(c ctx.Ctx, id domain.AuctionId, caller domain.Address) error {
	var seller domain.Address
	err := im.repo.Update(c, id, func(a *auction.Auction) error {
		if !caller.Equals(a.Seller) {
			return domain.ErrOnlySeller
		}
		if a.Ended {
			return domain.ErrAlreadyEnded
		}
		if a.HasBids() {
			return domain.ErrBidsExist
		}

		a.Ended = true
		a.Cancelled = true
		seller = a.Seller

		if !a.Escrowed {
			return nil
		}
		if err := im.assets.TransferFrom(c, a.Escrow, a.Escrow, a.Seller, a.AssetContract, a.AssetId); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id}).Error("returning asset failed")
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	im.events.Emit(c, domain.AuctionCancelled{Auction: id, Seller: seller})
	return nil
}

func (im *impl) Withdraw(c ctx.Ctx, id domain.AuctionId, caller domain.Address) (*big.Int, error) {
	var amount *big.Int
	err := im.repo.Update(c, id, func(a *auction.Auction) error {
		key := caller.ToLower()
		owed, ok := a.Withdrawable[key]
		if !ok || owed.Sign() <= 0 {
			return domain.ErrNothingToWithdraw
		}

		delete(a.Withdrawable, key)
		amount = new(big.Int).Set(owed)

		if err := im.funds.Transfer(c, a.QuoteToken, a.Escrow, caller, amount); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id, "caller": caller}).Error("funds.Transfer failed")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.events.Emit(c, domain.FundsWithdrawn{Auction: id, Account: caller.ToLower(), Amount: new(big.Int).Set(amount)})
	return amount, nil
}

func (im *impl) Withdrawable(c ctx.Ctx, id domain.AuctionId, account domain.Address) (*big.Int, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return domain.CopyBig(a.Withdrawable[account.ToLower()]), nil
}

func (im *impl) SettleExpired(c ctx.Ctx) ([]auction.SettleResult, error) {
	defer im.metrics.BumpTime("settle_expired.time").End()

	all, err := im.repo.FindAll(c)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}

	now := im.clock.Now()
	expired := []domain.AuctionId{}
	for _, a := range all {
		if !a.Ended && !now.Before(a.EndTime) {
			expired = append(expired, a.Id)
		}
	}
	if len(expired) == 0 {
		return []auction.SettleResult{}, nil
	}

	b := goroutines.NewBatch(im.settleWorkers, goroutines.WithBatchSize(len(expired)))
	defer b.Close()
	for i := 0; i < len(expired); i++ {
		id := expired[i]
		b.Queue(func() (interface{}, error) {
			res := auction.SettleResult{Auction: id}
			s, err := im.EndAuction(c, id)
			if err != nil {
				res.Err = err.Error()
			} else {
				res.Settlement = s
			}
			return res, nil
		})
	}
	b.QueueComplete()

	byId := make(map[domain.AuctionId]auction.SettleResult, len(expired))
	for ret := range b.Results() {
		if res, ok := ret.Value().(auction.SettleResult); ok {
			byId[res.Auction] = res
		}
	}

	return collectSettled(c, expired, byId), nil
}

// collectSettled orders results as expired, an auction without a result is
// reported as failed
func collectSettled(c ctx.Ctx, expired []domain.AuctionId, byId map[domain.AuctionId]auction.SettleResult) []auction.SettleResult {
	results := make([]auction.SettleResult, 0, len(expired))
	for _, id := range expired {
		res, ok := byId[id]
		if !ok {
			c.WithField("auction", id).Error("settle result missing")
			res = auction.SettleResult{Auction: id, Err: errSettleResultMissing.Error()}
		}
		results = append(results, res)
	}
	return results
}

func (im *impl) GetAuctionDetails(c ctx.Ctx, id domain.AuctionId) (*auction.Details, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return a.ToDetails(im.clock.Now()), nil
}

func (im *impl) GetAuctionBasicInfo(c ctx.Ctx, id domain.AuctionId) (*auction.BasicInfo, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return &auction.BasicInfo{
		Seller:        a.Seller,
		AssetContract: a.AssetContract,
		AssetId:       a.AssetId,
		QuoteToken:    a.QuoteToken,
		Ended:         a.Ended,
	}, nil
}

func (im *impl) GetAuctionTimeInfo(c ctx.Ctx, id domain.AuctionId) (*auction.TimeInfo, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	remaining := a.EndTime.Sub(im.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return &auction.TimeInfo{
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		TimeRemaining: remaining,
	}, nil
}

func (im *impl) IsAuctionActive(c ctx.Ctx, id domain.AuctionId) (bool, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return false, err
	}
	return a.IsActive(im.clock.Now()), nil
}

func (im *impl) GetBidUsdValue(c ctx.Ctx, id domain.AuctionId, amount *big.Int) (decimal.Decimal, error) {
	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return decimal.Zero, err
	}

	usd, err := im.oracle.ToUsd(c, a.QuoteToken, amount)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id, "quoteToken": a.QuoteToken}).Error("oracle.ToUsd failed")
		return decimal.Zero, err
	}
	return usd, nil
}

func (im *impl) CalculateDynamicFee(c ctx.Ctx, id domain.AuctionId, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}

	a, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return im.feeFor(c, a.Seller, amount)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
