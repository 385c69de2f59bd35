package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 40 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls []string
	fired chan string
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan string, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.calls = append(r.calls, v)
	r.mu.Unlock()
	r.fired <- v
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncer_OnlyLastValueFires(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(testDelay, rec.record)

	for _, term := range []string{"a", "an", "ann"} {
		d.Trigger(term)
		time.Sleep(testDelay / 4)
	}

	select {
	case got := <-rec.fired:
		assert.Equal(t, "ann", got)
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	time.Sleep(3 * testDelay)
	assert.Equal(t, []string{"ann"}, rec.snapshot())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(testDelay, rec.record)

	d.Trigger("bob")
	require.Equal(t, "bob", <-rec.fired)

	d.Trigger("ann")
	require.Equal(t, "ann", <-rec.fired)

	assert.Equal(t, []string{"bob", "ann"}, rec.snapshot())
}

func TestDebouncer_CancelAndStop(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(testDelay, rec.record)

	assert.False(t, d.Cancel(), "nothing pending yet")
	d.Trigger("x")
	assert.True(t, d.Cancel())

	d.Trigger("y")
	d.Stop()
	d.Trigger("z")

	time.Sleep(3 * testDelay)
	assert.Empty(t, rec.snapshot())
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func(string) {})
	assert.Equal(t, DefaultDelay, d.delay)
}
