package goroutine

import (
	"runtime/debug"

	"github.com/xugejunllt/nft-auction-market/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	name        string
	onEnded     func()
	onRecovered func(PanicEvent)
}

type Option func(*options)

// WithName tags the panic log with name
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithOnEnded runs f after the goroutine returns or panics
func WithOnEnded(f func()) Option {
	return func(o *options) {
		o.onEnded = f
	}
}

// WithOnRecovered runs f with the recovered panic
func WithOnRecovered(f func(PanicEvent)) Option {
	return func(o *options) {
		o.onRecovered = f
	}
}

// RecoverableGo runs f in a goroutine. The returned channel yields the panic, if any,
// and is closed when f returns normally.
func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if o.onEnded != nil {
				o.onEnded()
			}

			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			ev := PanicEvent{Panic: p, Stack: debug.Stack()}
			log.Log().WithFields(log.Fields{
				"err":   p,
				"name":  o.name,
				"stack": string(ev.Stack),
			}).Error("goroutine panicked")

			if o.onRecovered != nil {
				o.onRecovered(ev)
			}
			panicChan <- &ev
		}()

		f()
	}()

	return panicChan
}
