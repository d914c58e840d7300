package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainlinkFeedABI(t *testing.T) {
	req := require.New(t)

	for _, name := range []string{"decimals", "latestAnswer", "latestRoundData"} {
		_, ok := ChainlinkFeedABI.Methods[name]
		req.True(ok, name)
	}

	packed, err := ChainlinkFeedABI.Methods["latestRoundData"].Outputs.Pack(
		big.NewInt(7), big.NewInt(200000000000), big.NewInt(1650000000), big.NewInt(1650000001), big.NewInt(7),
	)
	req.NoError(err)

	res, err := ChainlinkFeedABI.Unpack("latestRoundData", packed)
	req.NoError(err)
	req.Len(res, 5)
	req.Equal(big.NewInt(200000000000), res[1].(*big.Int))
	req.Equal(big.NewInt(1650000001), res[3].(*big.Int))
}
