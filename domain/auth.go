package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

//go:generate mockery --name AuthUsecase --output mocks

type AuthUsecase interface {
	// Nonce returns the message the address has to sign to get a token
	Nonce(ctx ctx.Ctx, address Address) (string, error)
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address Address, err error)
}
