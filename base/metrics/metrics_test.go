package metrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type sample struct {
	kind string
	name string
	val  float64
	tags []string
}

type recordSink struct {
	mu      sync.Mutex
	samples []sample
	err     error
}

func (r *recordSink) add(kind, name string, val float64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, sample{kind, name, val, tags})
	return r.err
}

func (r *recordSink) Gauge(name string, value float64, tags []string, _ float64) error {
	return r.add("gauge", name, value, tags)
}

func (r *recordSink) Count(name string, value int64, tags []string, _ float64) error {
	return r.add("count", name, float64(value), tags)
}

func (r *recordSink) Histogram(name string, value float64, tags []string, _ float64) error {
	return r.add("histogram", name, value, tags)
}

func (r *recordSink) TimeInMilliseconds(name string, value float64, tags []string, _ float64) error {
	return r.add("time", name, value, tags)
}

type testsuite struct {
	suite.Suite
	rec *recordSink
	m   *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.rec = &recordSink{}
	t.m = &impl{
		pkgName: "auction",
		tags:    []string{"env:test"},
		sink:    func() sink { return t.rec },
	}
}

func (t *testsuite) TestPrefixAndTags() {
	t.m.BumpSum("settle.count", 1, "sold", "true")
	t.m.BumpAvg("queue", 3)
	t.m.BumpHistogram("bid.size", 2.5)

	t.Equal([]sample{
		{"count", "auction.settle.count", 1, []string{"env:test", "sold:true"}},
		{"gauge", "auction.queue", 3, []string{"env:test"}},
		{"histogram", "auction.bid.size", 2.5, []string{"env:test"}},
	}, t.rec.samples)
}

func (t *testsuite) TestBumpTime() {
	t.m.BumpTime("settle_expired.time", "workers", "4").End()

	t.Len(t.rec.samples, 1)
	t.Equal("auction.settle_expired.time", t.rec.samples[0].name)
	t.Equal([]string{"env:test", "workers:4"}, t.rec.samples[0].tags)
	t.GreaterOrEqual(t.rec.samples[0].val, 0.0)
}

func (t *testsuite) TestFailuresNeverEscape() {
	t.rec.err = errors.New("agent down")
	t.NotPanics(func() { t.m.BumpSum("bid.count", 1) })

	// odd tag list panics inside and is swallowed
	t.NotPanics(func() { t.m.BumpSum("bid.count", 1, "dangling") })
	t.Len(t.rec.samples, 1)
}

func (t *testsuite) TestPairTags() {
	t.Equal([]string{}, pairTags(nil))
	t.Equal([]string{"a:1", "b:2"}, pairTags([]string{"a", "1", "b", "2"}))
	t.Panics(func() { pairTags([]string{"a"}) })
}
