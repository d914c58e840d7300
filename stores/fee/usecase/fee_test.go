package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type testsuite struct {
	suite.Suite
	subject domain.FeeSchedule
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	s, err := New(DefaultTiers())
	t.Require().NoError(err)
	t.subject = s
}

// milli returns n/1000 ether
func milli(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1000000000000000))
}

func (t *testsuite) TestFeeFor() {
	cases := []struct {
		Desc   string
		Amount *big.Int
		Fee    *big.Int
	}{
		{"zero", big.NewInt(0), big.NewInt(0)},
		{"nil", nil, big.NewInt(0)},
		{"negative", big.NewInt(-5), big.NewInt(0)},
		{"1 ether", milli(1000), milli(50)},
		{"1.5 ether", milli(1500), milli(75)},
		{"10 ether", milli(10000), milli(500)},
		{"100 ether", milli(100000), milli(2750)},
		{"500 ether", milli(500000), milli(12750)},
		{"1000 ether", milli(1000000), milli(15250)},
		{"rounds down", big.NewInt(199), big.NewInt(9)},
	}

	for _, c := range cases {
		t.Equal(0, c.Fee.Cmp(t.subject.FeeFor(c.Amount)), "%s: got %s", c.Desc, t.subject.FeeFor(c.Amount))
	}
}

func (t *testsuite) TestRegressive() {
	// rate(1) > rate(100) > rate(1000)
	rate := func(amount *big.Int) *big.Rat {
		return new(big.Rat).SetFrac(t.subject.FeeFor(amount), amount)
	}
	t.Equal(1, rate(milli(1000)).Cmp(rate(milli(100000))))
	t.Equal(1, rate(milli(100000)).Cmp(rate(milli(1000000))))
}

func (t *testsuite) TestMonotonicAcrossBoundaries() {
	var prevFee *big.Int
	var prevRate *big.Rat
	// steps of 0.5 ether through both thresholds
	for n := int64(500); n <= 1200000; n += 500 {
		amount := milli(n)
		fee := t.subject.FeeFor(amount)
		r := new(big.Rat).SetFrac(fee, amount)
		if prevFee != nil {
			t.Require().True(fee.Cmp(prevFee) >= 0, "fee decreased at %s", amount)
			t.Require().True(r.Cmp(prevRate) <= 0, "rate increased at %s", amount)
		}
		prevFee, prevRate = fee, r
	}
}

func (t *testsuite) TestFeeNeverExceedsAmount() {
	s, err := New([]domain.FeeTier{{Bps: 10000}})
	t.NoError(err)
	t.Equal(0, milli(3).Cmp(s.FeeFor(milli(3))))
}

func (t *testsuite) TestInvalidTiers() {
	cases := []struct {
		Desc  string
		Tiers []domain.FeeTier
	}{
		{"empty", nil},
		{"bounded last", []domain.FeeTier{{Threshold: milli(1), Bps: 10}}},
		{"unbounded first", []domain.FeeTier{{Bps: 10}, {Threshold: milli(1), Bps: 5}}},
		{"increasing rate", []domain.FeeTier{{Threshold: milli(1), Bps: 10}, {Bps: 20}}},
		{"decreasing threshold", []domain.FeeTier{{Threshold: milli(2), Bps: 10}, {Threshold: milli(1), Bps: 5}, {Bps: 1}}},
		{"zero threshold", []domain.FeeTier{{Threshold: big.NewInt(0), Bps: 10}, {Bps: 1}}},
		{"bps overflow", []domain.FeeTier{{Bps: 10001}}},
		{"negative bps", []domain.FeeTier{{Bps: -1}}},
	}

	for _, c := range cases {
		_, err := New(c.Tiers)
		t.True(errors.Is(err, domain.ErrBadParamInput), c.Desc)
	}
}

func (t *testsuite) TestTiersAreCopies() {
	tiers := t.subject.Tiers()
	t.Len(tiers, 3)
	t.Nil(tiers[2].Threshold)
	tiers[0].Threshold.SetInt64(1)
	t.Equal(0, milli(10000).Cmp(t.subject.Tiers()[0].Threshold))
}
