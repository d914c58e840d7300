package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/suite"
	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/domain/keys"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value" cbor:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Second,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, keys.CacheKey(ts.im.pfx, k), sv, time.Second))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)

	time.Sleep(1100 * time.Millisecond)

	_, _, err = ts.cache.Get(mockCtx, keys.CacheKey(ts.im.pfx, k))
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestSet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.NoError(ts.im.Set(mockCtx, k, v))

	sv, _, err := ts.cache.Get(mockCtx, keys.CacheKey(ts.im.pfx, k))
	ts.NoError(err)

	ts.NoError(json.Unmarshal(sv, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestGetByFunc() {
	var (
		k     = "key"
		v     = value{"value"}
		c     = &value{}
		calls = 0
	)
	getter := func() (interface{}, error) {
		calls++
		return &v, nil
	}

	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)

	c = &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)
	ts.Equal(1, calls)
}

func (ts *testsuite) TestGetByFuncGetterFailed() {
	errGetter := errors.New("getter failed")
	c := &value{}

	ts.Equal(errGetter, ts.im.GetByFunc(mockCtx, "key", c, func() (interface{}, error) {
		return nil, errGetter
	}))
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", c))
}

func (ts *testsuite) TestCustomSerializer() {
	im := New(ServiceConfig{
		Ttl:         time.Minute,
		Pfx:         "cbor",
		Cache:       ts.cache,
		Serialize:   cbor.Marshal,
		Deserialize: cbor.Unmarshal,
	})
	v := value{"value"}
	c := &value{}

	ts.NoError(im.Set(mockCtx, "key", v))
	ts.NoError(im.Get(mockCtx, "key", c))
	ts.Equal(v, *c)

	raw, _, err := ts.cache.Get(mockCtx, keys.CacheKey("cbor", "key"))
	ts.NoError(err)
	ts.NoError(cbor.Unmarshal(raw, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestDel() {
	c := &value{}
	ts.NoError(ts.im.Set(mockCtx, "key", value{"value"}))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", c))
}
