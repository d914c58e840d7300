package chain

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	bCtx "github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
)

const (
	defaultDialTimeout = 10 * time.Second
	defaultCallTimeout = 5 * time.Second
)

var ErrUnsupportedChain = errors.New("unsupported chain")

type ClientCfg struct {
	RpcUrls     map[int32]string
	DialTimeout time.Duration
	// CallTimeout bounds a single eth_call
	CallTimeout time.Duration
}

//go:generate mockery --name Client --output mocks

type Client interface {
	// Call runs a read-only contract method at the latest block, or at blk when set
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	clients     map[int32]*ethclient.Client
	callTimeout time.Duration
}

// NewClient dials every configured rpc. Chains that fail to dial are skipped and the
// last dial error is returned along with a client serving the rest.
func NewClient(c bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	var lastErr error
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		dialCtx, cancel := bCtx.WithTimeout(c, dialTimeout)
		client, err := ethclient.DialContext(dialCtx, url)
		cancel()
		if err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("ethclient.DialContext failed")
			lastErr = xerrors.Errorf("dial chain %d: %w", chainId, err)
			continue
		}
		clients[chainId] = client
	}

	return &clientImpl{clients: clients, callTimeout: callTimeout}, lastErr
}

func (im *clientImpl) Call(c bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, contractAbi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := im.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := contractAbi.Pack(method, params...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method, "params": params}).Error("abi.Pack failed")
		return nil, err
	}

	callCtx, cancel := bCtx.WithTimeout(c, im.callTimeout)
	defer cancel()

	res, err := client.CallContract(callCtx, ethereum.CallMsg{To: &addr, Data: data}, blk)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method, "to": addr.Hex(), "chainId": chainId}).Error("client.CallContract failed")
		return nil, err
	}

	out, err := contractAbi.Unpack(method, res)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "method": method}).Error("abi.Unpack failed")
		return nil, err
	}
	return out, nil
}
