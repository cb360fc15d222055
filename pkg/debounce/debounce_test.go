package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCallCoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)

	var mu sync.Mutex
	var executed []string

	for _, text := range []string{"h", "he", "hel", "hell", "hello"} {
		text := text
		d.Call(func() {
			mu.Lock()
			executed = append(executed, text)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"hello"}, executed, "only the last call of the burst should run")
}

func TestCallRunsAgainAfterQuietPeriod(t *testing.T) {
	d := New(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	bump := func() {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.Call(bump)
	time.Sleep(60 * time.Millisecond)
	d.Call(bump)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestStopCancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0

	d.Call(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)

	// Stop on an idle debouncer must not panic.
	d.Stop()
}

func TestNewAppliesDefaultDelay(t *testing.T) {
	d := New(0)
	assert.Equal(t, DefaultDelay, d.delay)
}
