package usecase

import (
	"sync"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/auction"
	"github.com/xugejunllt/nft-auction-market/domain/crosschain"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em

	dm, err := cbor.DecOptions{ExtraReturnErrors: cbor.ExtraDecErrorUnknownField}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

// EncodeInstruction builds the payload a relay carries for one bid
func EncodeInstruction(ins crosschain.BidInstruction) ([]byte, error) {
	return encMode.Marshal(ins)
}

func decodeInstruction(payload []byte) (*crosschain.BidInstruction, error) {
	ins := &crosschain.BidInstruction{}
	if err := decMode.Unmarshal(payload, ins); err != nil {
		return nil, xerrors.Errorf("decode bid instruction: %v: %w", err, domain.ErrBadParamInput)
	}
	if ins.Auction == "" || ins.Amount == nil || ins.Amount.Sign() <= 0 {
		return nil, xerrors.Errorf("incomplete bid instruction: %w", domain.ErrBadParamInput)
	}
	return ins, nil
}

type impl struct {
	owner     domain.Address
	auctionUC auction.Usecase
	events    domain.EventSink

	// mu serializes deliveries so a message id is applied at most once
	mu     sync.Mutex
	chains map[uint64]bool
	seen   map[string]bool
}

// New creates the receiver of bids relayed from other chains
func New(owner domain.Address, auctionUC auction.Usecase, events domain.EventSink) crosschain.Usecase {
	return &impl{
		owner:     owner,
		auctionUC: auctionUC,
		events:    events,
		chains:    map[uint64]bool{},
		seen:      map[string]bool{},
	}
}

func (im *impl) AddSupportedChain(c ctx.Ctx, caller domain.Address, chain uint64) error {
	if !caller.Equals(im.owner) {
		return domain.ErrUnauthorized
	}

	im.mu.Lock()
	im.chains[chain] = true
	im.mu.Unlock()

	im.events.Emit(c, domain.SupportedChainAdded{Chain: chain})
	return nil
}

func (im *impl) IsSupportedChain(c ctx.Ctx, chain uint64) bool {
	im.mu.Lock()
	defer im.mu.Unlock()

	return im.chains[chain]
}

// Deliver applies msg as a bid by its sender. A failed delivery may be retried
// with the same id.
func (im *impl) Deliver(c ctx.Ctx, msg crosschain.Message) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if !im.chains[msg.SourceChain] {
		return domain.ErrUnsupportedChain
	}
	if msg.Id == "" {
		return domain.ErrBadParamInput
	}
	if im.seen[msg.Id] {
		return domain.ErrDuplicateMessage
	}
	if !msg.Sender.IsValid() {
		return domain.ErrInvalidAddress
	}

	ins, err := decodeInstruction(msg.Payload)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": msg.Id}).Warn("decodeInstruction failed")
		return err
	}

	if err := im.auctionUC.Bid(c, ins.Auction, msg.Sender, ins.Amount, nil); err != nil {
		c.WithFields(log.Fields{
			"err":         err,
			"id":          msg.Id,
			"sourceChain": msg.SourceChain,
			"auction":     ins.Auction,
		}).Warn("auctionUC.Bid failed")
		return err
	}

	im.seen[msg.Id] = true
	return nil
}
