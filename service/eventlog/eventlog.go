package eventlog

import (
	"sync"
	"time"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
)

// Record is one appended event
type Record struct {
	Seq     uint64           `json:"seq"`
	Name    string           `json:"name"`
	Auction domain.AuctionId `json:"auction,omitempty"`
	At      time.Time        `json:"at"`
	Event   domain.Event     `json:"event"`
}

// Log is an append-only, in-memory event sink
type Log struct {
	mu      sync.RWMutex
	clock   domain.Clock
	records []Record
}

func New(clock domain.Clock) *Log {
	return &Log{clock: clock}
}

func (l *Log) Emit(c ctx.Ctx, e domain.Event) {
	l.mu.Lock()
	r := Record{
		Seq:     uint64(len(l.records)) + 1,
		Name:    e.EventName(),
		Auction: e.AuctionRef(),
		At:      l.clock.Now(),
		Event:   e,
	}
	l.records = append(l.records, r)
	l.mu.Unlock()

	c.WithFields(log.Fields{"event": r.Name, "seq": r.Seq, "auction": r.Auction, "payload": e}).Info("event emitted")
}

// All returns every record in emission order
func (l *Log) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]Record, len(l.records))
	copy(res, l.records)
	return res
}

func (l *Log) ByAuction(id domain.AuctionId) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := []Record{}
	for _, r := range l.records {
		if r.Auction == id {
			res = append(res, r)
		}
	}
	return res
}

// Names lists event names in emission order, filtered to id unless it is empty
func (l *Log) Names(id domain.AuctionId) []string {
	records := l.All()
	if id != "" {
		records = l.ByAuction(id)
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}
