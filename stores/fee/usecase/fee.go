package usecase

import (
	"math/big"

	"github.com/xugejunllt/nft-auction-market/domain"
	"golang.org/x/xerrors"
)

var ether = new(big.Int).Exp(domain.Big10, big.NewInt(18), nil)

// DefaultTiers charges 5% up to 10 ether, 2.5% up to 500 ether and 0.5% above
func DefaultTiers() []domain.FeeTier {
	return []domain.FeeTier{
		{Threshold: new(big.Int).Mul(big.NewInt(10), ether), Bps: 500},
		{Threshold: new(big.Int).Mul(big.NewInt(500), ether), Bps: 250},
		{Threshold: nil, Bps: 50},
	}
}

type impl struct {
	tiers []domain.FeeTier
}

// New builds a marginal schedule: each tier's rate applies only to the portion of the
// amount inside that tier. Rates must not increase so the effective rate is regressive.
func New(tiers []domain.FeeTier) (domain.FeeSchedule, error) {
	if len(tiers) == 0 {
		return nil, xerrors.Errorf("no fee tier: %w", domain.ErrBadParamInput)
	}

	copied := make([]domain.FeeTier, 0, len(tiers))
	prev := domain.Big0
	for i, t := range tiers {
		last := i == len(tiers)-1
		if t.Bps < 0 || t.Bps > domain.BpsDenom.Int64() {
			return nil, xerrors.Errorf("tier %d bps %d out of range: %w", i, t.Bps, domain.ErrBadParamInput)
		}
		if i > 0 && t.Bps > tiers[i-1].Bps {
			return nil, xerrors.Errorf("tier %d rate increases: %w", i, domain.ErrBadParamInput)
		}
		if t.Threshold == nil {
			if !last {
				return nil, xerrors.Errorf("tier %d unbounded but not last: %w", i, domain.ErrBadParamInput)
			}
		} else {
			if last {
				return nil, xerrors.Errorf("last tier must be unbounded: %w", domain.ErrBadParamInput)
			}
			if t.Threshold.Cmp(prev) <= 0 {
				return nil, xerrors.Errorf("tier %d threshold not increasing: %w", i, domain.ErrBadParamInput)
			}
			prev = t.Threshold
		}
		copied = append(copied, domain.FeeTier{Threshold: copyThreshold(t.Threshold), Bps: t.Bps})
	}

	return &impl{tiers: copied}, nil
}

func (im *impl) FeeFor(amount *big.Int) *big.Int {
	if amount == nil || amount.Sign() <= 0 {
		return new(big.Int)
	}

	acc := new(big.Int)
	lower := new(big.Int)
	portion := new(big.Int)
	for _, t := range im.tiers {
		upper := amount
		if t.Threshold != nil && t.Threshold.Cmp(amount) < 0 {
			upper = t.Threshold
		}
		portion.Sub(upper, lower)
		if portion.Sign() <= 0 {
			break
		}
		acc.Add(acc, portion.Mul(portion, big.NewInt(t.Bps)))
		lower.Set(upper)
	}

	return acc.Quo(acc, domain.BpsDenom)
}

func (im *impl) Tiers() []domain.FeeTier {
	res := make([]domain.FeeTier, len(im.tiers))
	for i, t := range im.tiers {
		res[i] = domain.FeeTier{Threshold: copyThreshold(t.Threshold), Bps: t.Bps}
	}
	return res
}

func copyThreshold(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
