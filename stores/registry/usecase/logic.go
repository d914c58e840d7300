package usecase

import (
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
	"github.com/xugejunllt/nft-auction-market/stores/registry/schema"
)

// logic is the swappable behavior behind the registry handle
type logic interface {
	version() string
	schema() registry.SchemaVersion
	// onSettlement runs after the shared volume counters were updated
	onSettlement(s schema.Storage, seller, winner domain.Address)
	feeDiscountBps(s schema.Storage, user domain.Address) int64
}

type logicV1 struct{}

func (logicV1) version() string                                             { return registry.VersionV1 }
func (logicV1) schema() registry.SchemaVersion                              { return registry.SchemaV1 }
func (logicV1) onSettlement(schema.Storage, domain.Address, domain.Address) {}
func (logicV1) feeDiscountBps(schema.Storage, domain.Address) int64         { return 0 }

type logicV2 struct{}

func (logicV2) version() string                { return registry.VersionV2 }
func (logicV2) schema() registry.SchemaVersion { return registry.SchemaV2 }

func (logicV2) onSettlement(s schema.Storage, seller, winner domain.Address) {
	v2 := s.(*schema.StorageV2)
	v2.Ext(seller).SuccessfulTrades++
	if !winner.Equals(seller) {
		v2.Ext(winner).SuccessfulTrades++
	}
	v2.TotalSuccessful++
}

// feeDiscountBps reads the stored level, a level never computed gives no discount
func (logicV2) feeDiscountBps(s schema.Storage, user domain.Address) int64 {
	ext, ok := s.(*schema.StorageV2).UserExt[user.ToLower()]
	if !ok {
		return 0
	}
	return discountBps(ext.Level)
}

var levelThresholds = []struct {
	level  uint8
	trades uint64
}{
	{4, 50},
	{3, 20},
	{2, 5},
}

func levelFor(successfulTrades uint64) uint8 {
	for _, t := range levelThresholds {
		if successfulTrades >= t.trades {
			return t.level
		}
	}
	return 1
}

func discountBps(level uint8) int64 {
	switch level {
	case 2:
		return 500
	case 3:
		return 1000
	case 4:
		return 2000
	}
	return 0
}

func logicFor(v registry.SchemaVersion) logic {
	switch v {
	case registry.SchemaV1:
		return logicV1{}
	case registry.SchemaV2:
		return logicV2{}
	}
	return nil
}
