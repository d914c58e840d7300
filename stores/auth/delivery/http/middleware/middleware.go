package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/domain"
)

// OwnerFunc reads the current owner of the market
type OwnerFunc func(c ctx.Ctx) domain.Address

type AuthMiddleware struct {
	auth  domain.AuthUsecase
	owner OwnerFunc
}

func New(auth domain.AuthUsecase, owner OwnerFunc) *AuthMiddleware {
	return &AuthMiddleware{
		auth:  auth,
		owner: owner,
	}
}

// Auth requires a bearer token and sets "address" to its holder
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

// IsOwner must run after Auth
func (m *AuthMiddleware) IsOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)
			address := c.Get("address").(domain.Address)

			if !address.Equals(m.owner(ctx)) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require owner privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	} else {
		c.Set("address", ads)
		return true, nil
	}
}
