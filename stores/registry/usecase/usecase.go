package usecase

import (
	"math/big"
	"sync"

	"github.com/google/uuid"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/ethereum"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/base/metrics"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
	"github.com/xugejunllt/nft-auction-market/stores/registry/schema"
)

type RegistryUseCaseCfg struct {
	Owner                domain.Address
	PlatformFeeRecipient domain.Address
	// Address is the registry's own account, escrow accounts derive from it
	Address     domain.Address
	AuctionRepo auction.Repo
	Tokens      domain.TokenRegistry
	Fees        domain.FeeSchedule
	Assets      domain.AssetLedger
	Events      domain.EventSink
	Clock       domain.Clock
}

type impl struct {
	address     domain.Address
	auctionRepo auction.Repo
	tokens      domain.TokenRegistry
	fees        domain.FeeSchedule
	assets      domain.AssetLedger
	events      domain.EventSink
	clock       domain.Clock
	metrics     metrics.Service

	// mu guards storage and logic, which are swapped together by Upgrade
	mu      sync.RWMutex
	storage schema.Storage
	logic   logic
}

// New creates the registry at the first logic version
func New(cfg *RegistryUseCaseCfg) registry.Usecase {
	return &impl{
		address:     cfg.Address.ToLower(),
		auctionRepo: cfg.AuctionRepo,
		tokens:      cfg.Tokens,
		fees:        cfg.Fees,
		assets:      cfg.Assets,
		events:      cfg.Events,
		clock:       cfg.Clock,
		metrics:     metrics.New("registry"),
		storage:     schema.NewStorageV1(cfg.Owner, cfg.PlatformFeeRecipient),
		logic:       logicV1{},
	}
}

func (im *impl) CreateAuction(c ctx.Ctx, caller domain.Address, p registry.CreateParams) (domain.AuctionId, error) {
	if !caller.IsValid() || !p.AssetContract.IsValid() || !p.QuoteToken.IsValid() {
		return "", domain.ErrInvalidAddress
	}

	owner, err := im.assets.OwnerOf(c, p.AssetContract, p.AssetId)
	if err == domain.ErrNotFound {
		return "", domain.ErrNotAssetOwner
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "contract": p.AssetContract, "assetId": p.AssetId}).Error("assets.OwnerOf failed")
		return "", err
	}
	if !owner.Equals(caller) {
		return "", domain.ErrNotAssetOwner
	}
	if !p.QuoteToken.IsNative() && !im.tokens.IsSupported(c, p.QuoteToken) {
		return "", domain.ErrQuoteTokenNotSupported
	}
	if p.Duration <= 0 {
		return "", domain.ErrInvalidDuration
	}

	im.mu.Lock()
	base := im.storage.Base()
	now := im.clock.Now().UTC()
	a := &auction.Auction{
		Id:            domain.AuctionId(uuid.NewString()),
		Escrow:        domain.Address(ethereum.ContractAddress(string(im.address), base.TotalAuctionsCreated)),
		Seller:        caller.ToLower(),
		AssetContract: p.AssetContract.ToLower(),
		AssetId:       p.AssetId,
		QuoteToken:    p.QuoteToken.ToLower(),
		StartTime:     now,
		EndTime:       now.Add(p.Duration),
		HighestBid:    new(big.Int),
		Withdrawable:  map[domain.Address]*big.Int{},
	}
	if err := im.auctionRepo.Insert(c, a); err != nil {
		im.mu.Unlock()
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("auctionRepo.Insert failed")
		return "", err
	}

	base.TotalAuctionsCreated++
	base.User(a.Seller).CreatedAuctions++
	base.Auctions[a.Id] = &schema.CreationRecord{
		Auction:       a.Id,
		Seller:        a.Seller,
		AssetContract: a.AssetContract,
		AssetId:       a.AssetId,
		QuoteToken:    a.QuoteToken,
		CreatedAt:     now,
	}
	base.AuctionOrder = append(base.AuctionOrder, a.Id)
	im.mu.Unlock()

	im.metrics.BumpSum("create.count", 1)
	im.events.Emit(c, domain.AuctionCreated{
		Auction:       a.Id,
		Seller:        a.Seller,
		AssetContract: a.AssetContract,
		AssetId:       a.AssetId,
		QuoteToken:    a.QuoteToken,
		Escrow:        a.Escrow,
	})
	return a.Id, nil
}

// RecordSettlement accepts one report per auction, from the auction's own seller record
func (im *impl) RecordSettlement(c ctx.Ctx, id domain.AuctionId, seller, winner domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	base := im.storage.Base()
	rec, ok := base.Auctions[id]
	if !ok {
		return domain.ErrUnknownAuction
	}
	if !rec.Seller.Equals(seller) {
		c.WithFields(log.Fields{"id": id, "seller": seller}).Warn("settlement reported with wrong seller")
		return domain.ErrUnauthorized
	}
	if rec.Reported {
		return domain.ErrAlreadyReported
	}

	rec.Reported = true
	base.TotalTradingVolume = new(big.Int).Add(base.TotalTradingVolume, amount)
	sellerStats := base.User(seller)
	sellerStats.TradingVolume = new(big.Int).Add(sellerStats.TradingVolume, amount)
	winnerStats := base.User(winner)
	winnerStats.TradingVolume = new(big.Int).Add(winnerStats.TradingVolume, amount)
	im.logic.onSettlement(im.storage, seller, winner)
	return nil
}

func (im *impl) FeeDiscountBps(c ctx.Ctx, user domain.Address) (int64, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.logic.feeDiscountBps(im.storage, user), nil
}

func (im *impl) PlatformFeeRecipient(c ctx.Ctx) domain.Address {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.storage.Base().PlatformFeeRecipient
}

func (im *impl) GetFactoryStats(c ctx.Ctx) registry.FactoryStats {
	im.mu.RLock()
	defer im.mu.RUnlock()

	base := im.storage.Base()
	return registry.FactoryStats{
		PlatformFeeRecipient: base.PlatformFeeRecipient,
		TotalAuctionsCreated: base.TotalAuctionsCreated,
		TotalTradingVolume:   domain.CopyBig(base.TotalTradingVolume),
	}
}

func (im *impl) GetUserStats(c ctx.Ctx, user domain.Address) registry.UserStats {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.userStats(user)
}

func (im *impl) userStats(user domain.Address) registry.UserStats {
	res := registry.UserStats{TradingVolume: new(big.Int)}
	if u, ok := im.storage.Base().Users[user.ToLower()]; ok {
		res.CreatedAuctions = u.CreatedAuctions
		res.TradingVolume = domain.CopyBig(u.TradingVolume)
	}
	if v2, ok := im.storage.(*schema.StorageV2); ok {
		if ext, ok := v2.UserExt[user.ToLower()]; ok {
			res.Level = ext.Level
			res.SuccessfulTrades = ext.SuccessfulTrades
		}
	}
	return res
}

func (im *impl) GetAuctionsCount(c ctx.Ctx) uint64 {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.storage.Base().TotalAuctionsCreated
}

// GetAuctions lists auction handles in creation order
func (im *impl) GetAuctions(c ctx.Ctx) []domain.AuctionId {
	im.mu.RLock()
	defer im.mu.RUnlock()

	order := im.storage.Base().AuctionOrder
	res := make([]domain.AuctionId, len(order))
	copy(res, order)
	return res
}

func (im *impl) CalculateFeeForAmount(amount *big.Int) *big.Int {
	return im.fees.FeeFor(amount)
}

func (im *impl) Owner(c ctx.Ctx) domain.Address {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.storage.Base().Owner
}

func (im *impl) Version(c ctx.Ctx) string {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.logic.version()
}

func (im *impl) Upgrade(c ctx.Ctx, caller domain.Address, to registry.SchemaVersion) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if !caller.Equals(im.storage.Base().Owner) {
		return domain.ErrUnauthorized
	}

	next := logicFor(to)
	if next == nil || to == im.logic.schema() {
		return domain.ErrUnsupportedVersion
	}

	migrated, err := schema.Migrate(im.storage, to)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "from": im.logic.version(), "to": next.version()}).Error("schema.Migrate failed")
		return err
	}

	from := im.logic.version()
	im.storage = migrated
	im.logic = next
	c.WithFields(log.Fields{"from": from, "to": next.version()}).Info("registry upgraded")
	im.events.Emit(c, domain.RegistryUpgraded{From: from, To: next.version()})
	return nil
}

func (im *impl) storageV2() (*schema.StorageV2, error) {
	v2, ok := im.storage.(*schema.StorageV2)
	if !ok {
		return nil, domain.ErrUnsupportedVersion
	}
	return v2, nil
}

// UpdateUserLevel recomputes user's level from its successful trades
func (im *impl) UpdateUserLevel(c ctx.Ctx, user domain.Address) (uint8, error) {
	if !user.IsValid() {
		return 0, domain.ErrInvalidAddress
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	v2, err := im.storageV2()
	if err != nil {
		return 0, err
	}
	ext := v2.Ext(user)
	ext.Level = levelFor(ext.SuccessfulTrades)
	return ext.Level, nil
}

func (im *impl) GetUserLevelAndDiscount(c ctx.Ctx, user domain.Address) (uint8, int64, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	v2, err := im.storageV2()
	if err != nil {
		return 0, 0, err
	}
	ext, ok := v2.UserExt[user.ToLower()]
	if !ok {
		return 0, 0, nil
	}
	return ext.Level, discountBps(ext.Level), nil
}

func (im *impl) GetUserFullInfo(c ctx.Ctx, user domain.Address) (*registry.UserFullInfo, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if _, err := im.storageV2(); err != nil {
		return nil, err
	}
	stats := im.userStats(user)
	return &registry.UserFullInfo{
		Stats:       stats,
		Level:       stats.Level,
		DiscountBps: discountBps(stats.Level),
	}, nil
}

func (im *impl) GetPlatformStats(c ctx.Ctx) (*registry.PlatformStats, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	v2, err := im.storageV2()
	if err != nil {
		return nil, err
	}

	var rate uint64
	if v2.TotalAuctionsCreated > 0 {
		rate = v2.TotalSuccessful * 100 / v2.TotalAuctionsCreated
	}
	return &registry.PlatformStats{
		TotalAuctions:   v2.TotalAuctionsCreated,
		TotalSuccessful: v2.TotalSuccessful,
		SuccessRate:     rate,
		TotalVolume:     domain.CopyBig(v2.TotalTradingVolume),
	}, nil
}
