package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/xugejunllt/nft-auction-market/base/log"
)

const (
	ddPort = 8125
	// buffer 10 metrics before sending to the agent
	ddBufferSize = 10
)

// sink is the subset of statsd.ClientInterface metrics are sent through
type sink interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

var (
	sinkOnce   sync.Once
	sharedSink sink
)

// defaultSink connects on first use so the config is loaded by then.
// Without datadog_host metrics go to the debug log.
func defaultSink() sink {
	sinkOnce.Do(func() {
		host := viper.GetString("datadog_host")
		if host == "" {
			log.Log().Info("datadog_host not set, metrics go to debug log")
			sharedSink = logSink{}
			return
		}

		addr := fmt.Sprintf("%s:%d", host, ddPort)
		client, err := statsd.NewBuffered(addr, ddBufferSize)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("statsd.NewBuffered failed, metrics go to debug log")
			sharedSink = logSink{}
			return
		}
		log.Log().WithField("addr", addr).Info("connected to datadog agent")
		sharedSink = client
	})
	return sharedSink
}

type logSink struct{}

func (logSink) Gauge(name string, value float64, tags []string, _ float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric gauge")
	return nil
}

func (logSink) Count(name string, value int64, tags []string, _ float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric count")
	return nil
}

func (logSink) Histogram(name string, value float64, tags []string, _ float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric histogram")
	return nil
}

func (logSink) TimeInMilliseconds(name string, value float64, tags []string, _ float64) error {
	log.Log().WithFields(log.Fields{"key": name, "time_ms": value, "tags": tags}).Debug("metric time")
	return nil
}
