package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	Big0     = big.NewInt(0)
	Big10    = big.NewInt(10)
	BpsDenom = big.NewInt(10000)
)

type ChainId int32

type Address string

// EmptyAddress doubles as the native currency sentinel for quote tokens
const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// NativeToken identifies the chain's native currency
const NativeToken = EmptyAddress

// NativeDecimals is the precision of the native currency
const NativeDecimals = 18

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) IsNative() bool {
	return a.Equals(NativeToken)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) IsValid() bool {
	return common.IsHexAddress(string(a))
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// AuctionId is the opaque handle of one listing
type AuctionId string

func (i AuctionId) String() string {
	return string(i)
}

// Clock is the time source of every time-gated transition
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

// ParseAmount parses a base-10 integer amount in raw token units
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return v, nil
}

// CopyBig returns a copy of v, nil becomes zero
func CopyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
