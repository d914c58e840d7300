package domain

import "math/big"

// FeeTier charges Bps on the portion of an amount up to Threshold.
// A nil Threshold means unbounded and is only valid on the last tier.
type FeeTier struct {
	Threshold *big.Int `json:"threshold" mapstructure:"threshold"`
	Bps       int64    `json:"bps" mapstructure:"bps"`
}

// FeeSchedule is a pure function from an amount to the platform fee
type FeeSchedule interface {
	FeeFor(amount *big.Int) *big.Int
	Tiers() []FeeTier
}
