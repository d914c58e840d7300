package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/ethereum"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/service/cache"
)

const defaultTokenTtl = 24 * time.Hour

type AuthUseCaseCfg struct {
	JwtSecret string
	// SigningMsgTemplate has one %s, replaced by the nonce
	SigningMsgTemplate string
	Nonces             cache.Service
	TokenTtl           time.Duration
	Clock              domain.Clock
}

type impl struct {
	jwtSecret []byte
	template  string
	nonces    cache.Service
	tokenTtl  time.Duration
	clock     domain.Clock
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	ttl := cfg.TokenTtl
	if ttl <= 0 {
		ttl = defaultTokenTtl
	}
	return &impl{
		jwtSecret: []byte(cfg.JwtSecret),
		template:  cfg.SigningMsgTemplate,
		nonces:    cfg.Nonces,
		tokenTtl:  ttl,
		clock:     cfg.Clock,
	}
}

func (im *impl) Nonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	if !address.IsValid() {
		return "", domain.ErrInvalidAddress
	}

	nonce := uuid.NewString()
	if err := im.nonces.Set(ctx, address.ToLowerStr(), nonce); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("nonces.Set failed")
		return "", err
	}
	return fmt.Sprintf(im.template, nonce), nil
}

// SignToken consumes the address's nonce, a nonce signs in at most once
func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !address.IsValid() {
		return "", domain.ErrInvalidAddress
	}

	var nonce string
	if err := im.nonces.Get(ctx, address.ToLowerStr(), &nonce); err == cache.ErrNotFound {
		return "", domain.ErrUnauthorized
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("nonces.Get failed")
		return "", err
	}

	msg := fmt.Sprintf(im.template, nonce)
	if ok, err := ethereum.ValidateMsgSignature([]byte(msg), signature, string(address)); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Warn("ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	if err := im.nonces.Del(ctx, address.ToLowerStr()); err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("nonces.Del failed")
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: im.clock.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return domain.Address(claims.Address), nil
	}

	return "", domain.ErrUnauthorized
}
