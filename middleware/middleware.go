package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/delivery"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/base/metrics"
	"github.com/xugejunllt/nft-auction-market/base/validator"
	"github.com/xugejunllt/nft-auction-market/domain"
)

type GoMiddleware struct{}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// CORS allows any origin, the api is public and auth travels in a header
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// AddContext puts a request scoped ctx.Ctx under "ctx"
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			cont := ctx.WithValues(ctx.From(c.Request().Context()), map[string]interface{}{
				"requestID": c.Response().Header().Get(echo.HeaderXRequestID),
				"path":      c.Path(),
			})
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs every response, with the caller when it is signed in
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)

			met.BumpHistogram("request.time", float64(elapsed)/float64(time.Millisecond),
				"method", req.Method, "path", c.Path(), "status", strconv.Itoa(res.Status))

			fields := log.Fields{
				"ms":         float64(elapsed) / float64(time.Millisecond),
				"httpStatus": res.Status,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.RequestURI(),
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if caller, ok := c.Get("address").(domain.Address); ok {
				fields["caller"] = caller
			}
			if res.Status >= http.StatusBadRequest {
				fields["nextErr"] = err
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}
			logger.WithFields(fields).Info("response")
			return nil
		}
	}
}

// IsValidAddress rejects the request when path param is not an address
func IsValidAddress(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !validator.IsValidAddress(c.Param(param)) {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
			}
			return next(c)
		}
	}
}
