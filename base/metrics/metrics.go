/*Package metrics records usecase and http metrics to datadog.

Key naming:
- process time: *.time
- counters: *.count
- amounts: *.volume
- errors: *.err

Tags are given as key/value pairs, e.g. BumpSum("settle.count", 1, "sold", "true").
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xugejunllt/nft-auction-market/base/env"
	"github.com/xugejunllt/nft-auction-market/base/log"
)

const sampleRate = 1.0

// Ender stops a timer started by BumpTime
type Ender interface {
	End()
}

type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type Option func(*opt)

type opt struct {
	withPodName bool
}

// WithoutPodName drops the pod tag
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a client prefixing every key with pkgName
func New(pkgName string, options ...Option) Service {
	o := opt{withPodName: true}
	for _, option := range options {
		option(&o)
	}

	tags := []string{
		// an empty host tag keeps datadog from attaching host level tags
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		tags = append(tags, "pod:"+env.PodName())
	}

	return &impl{pkgName: pkgName, tags: tags, sink: defaultSink}
}

type impl struct {
	pkgName string
	tags    []string
	sink    func() sink
}

func (im *impl) key(key string) string {
	return im.pkgName + "." + key
}

// bump never lets a metric failure reach the caller
func (im *impl) bump(kind, key string, val float64, tags []string, send func(sink, string, float64, []string) error) {
	defer func() {
		if p := recover(); p != nil {
			log.Log().WithFields(log.Fields{"panic": p, "key": im.key(key), "tags": strings.Join(tags, ",")}).Error(kind + " panicked")
		}
	}()

	all := make([]string, 0, len(im.tags)+len(tags)/2)
	all = append(append(all, im.tags...), pairTags(tags)...)
	if err := send(im.sink(), im.key(key), val, all); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": im.key(key), "val": val}).Warn(kind + " failed")
	}
}

// BumpAvg reports val as a gauge, datadog averages gauges over the flush interval
func (im *impl) BumpAvg(key string, val float64, tags ...string) {
	im.bump("BumpAvg", key, val, tags, func(s sink, k string, v float64, t []string) error {
		return s.Gauge(k, v, t, sampleRate)
	})
}

func (im *impl) BumpSum(key string, val float64, tags ...string) {
	im.bump("BumpSum", key, val, tags, func(s sink, k string, v float64, t []string) error {
		return s.Count(k, int64(v), t, sampleRate)
	})
}

func (im *impl) BumpHistogram(key string, val float64, tags ...string) {
	im.bump("BumpHistogram", key, val, tags, func(s sink, k string, v float64, t []string) error {
		return s.Histogram(k, v, t, sampleRate)
	})
}

// BumpTime starts a timer, typically used as
//
//	defer m.BumpTime("settle.time").End()
func (im *impl) BumpTime(key string, tags ...string) Ender {
	return &timer{im: im, key: key, tags: tags, start: time.Now()}
}

type timer struct {
	im    *impl
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.im.bump("BumpTime", t.key, ms, t.tags, func(s sink, k string, v float64, tags []string) error {
		return s.TimeInMilliseconds(k, v, tags, sampleRate)
	})
}

// pairTags turns ["k1", "v1", "k2", "v2"] into ["k1:v1", "k2:v2"]
func pairTags(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, 0, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr = append(arr, tags[i]+":"+tags[i+1])
	}
	return arr
}
