package crosschain

import (
	"math/big"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain"
)

// Message is what the relay delivers, the payload is an encoded BidInstruction
type Message struct {
	Id          string         `json:"id"`
	SourceChain uint64         `json:"sourceChain"`
	Sender      domain.Address `json:"sender"`
	Payload     []byte         `json:"payload"`
}

type BidInstruction struct {
	Auction domain.AuctionId `cbor:"auction"`
	Amount  *big.Int         `cbor:"amount"`
}

type Usecase interface {
	AddSupportedChain(c ctx.Ctx, caller domain.Address, chain uint64) error
	IsSupportedChain(c ctx.Ctx, chain uint64) bool
	Deliver(c ctx.Ctx, msg Message) error
}
