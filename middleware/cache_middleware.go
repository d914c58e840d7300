package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v4"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/log"
	"github.com/xugejunllt/nft-auction-market/service/cache"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider"
)

const cacheMiddlewarePfx = "httpCacheMiddleware"

// Response is what CacheHttp stores per url
type Response struct {
	Value  []byte      `cbor:"value"`
	Header http.Header `cbor:"header"`
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

const headerXCache = "X-Cache"

// cacheKey hashes the url with its query params sorted, so reordered
// params share one entry
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, values := range params {
		sort.Strings(values)
	}
	hash := fnv.New64a()
	hash.Write([]byte(u.Path + "?" + params.Encode()))
	return strconv.FormatUint(hash.Sum64(), 36)
}

func writeCached(c echo.Context, r *Response) error {
	for k, v := range r.Header {
		c.Response().Header().Set(k, strings.Join(v, ","))
	}
	c.Response().Header().Set(headerXCache, "HIT")
	c.Response().WriteHeader(http.StatusOK)
	_, err := c.Response().Write(r.Value)
	return err
}

// CacheHttp serves successful GET responses from p for ttl. Use it only on
// routes whose payload does not change between writes, such as config reads.
func CacheHttp(p provider.Provider, ttl time.Duration) echo.MiddlewareFunc {
	responses := cache.New(cache.ServiceConfig{
		Ttl:         ttl,
		Pfx:         cacheMiddlewarePfx,
		Cache:       p,
		Serialize:   cbor.Marshal,
		Deserialize: cbor.Unmarshal,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			cont := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(c.Request().URL)

			cached := Response{}
			if err := responses.Get(cont, key, &cached); err == nil {
				return writeCached(c, &cached)
			} else if err != cache.ErrNotFound {
				cont.WithFields(log.Fields{"err": err, "key": key}).Warn("responses.Get failed")
			}

			c.Response().Header().Set(headerXCache, "MISS")
			body := new(bytes.Buffer)
			writer := &bodyDumpResponseWriter{
				Writer:         io.MultiWriter(c.Response().Writer, body),
				ResponseWriter: c.Response().Writer,
			}
			c.Response().Writer = writer
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode == 0 || writer.statusCode >= http.StatusBadRequest {
				return nil
			}

			header := writer.Header().Clone()
			header.Del(headerXCache)
			if err := responses.Set(cont, key, Response{Value: body.Bytes(), Header: header}); err != nil {
				cont.WithFields(log.Fields{"err": err, "key": key}).Warn("responses.Set failed")
			}
			return nil
		}
	}
}
