package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverableGoPanic(t *testing.T) {
	res := []string{}

	ev, ok := <-RecoverableGo(
		func() {
			res = append(res, "run")
			panic("boom")
		},
		WithName("server"),
		WithOnEnded(func() {
			res = append(res, "ended")
		}),
		WithOnRecovered(func(ev PanicEvent) {
			res = append(res, "recovered "+ev.Panic.(string))
		}),
	)

	assert.True(t, ok)
	assert.Equal(t, "boom", ev.Panic)
	assert.NotEmpty(t, ev.Stack)
	assert.Equal(t, []string{"run", "ended", "recovered boom"}, res)
}

func TestRecoverableGoReturns(t *testing.T) {
	recovered := false
	ev, ok := <-RecoverableGo(func() {}, WithOnRecovered(func(PanicEvent) { recovered = true }))

	assert.False(t, ok)
	assert.Nil(t, ev)
	assert.False(t, recovered)
}
