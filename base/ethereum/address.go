package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// AddressOf returns the lower case hex address of a public key
func AddressOf(pub *ecdsa.PublicKey) string {
	return strings.ToLower(crypto.PubkeyToAddress(*pub).Hex())
}

// ContractAddress derives the address a deployer creates at the given nonce,
// the same way CREATE does.
func ContractAddress(deployer string, nonce uint64) string {
	return strings.ToLower(crypto.CreateAddress(common.HexToAddress(deployer), nonce).Hex())
}
