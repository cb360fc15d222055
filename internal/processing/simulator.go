package processing

import (
	"sync"
	"time"
)

// Step pairs a progress threshold with the task label shown while the
// remote call is in flight.
type Step struct {
	Threshold int
	Label     string
}

// DefaultSteps is the fixed progress illusion played while waiting for the
// model. The remote call gives no real progress signal, so the simulator
// walks this table instead.
var DefaultSteps = []Step{
	{10, "Validating transcript…"},
	{25, "Preprocessing text…"},
	{40, "Analyzing content with AI…"},
	{60, "Extracting highlights and lowlights…"},
	{80, "Identifying key information…"},
	{95, "Finalizing results…"},
}

// DefaultTickInterval is the pace of the progress illusion.
const DefaultTickInterval = 1 * time.Second

// Simulator emits synthetic progress ticks on a fixed schedule. Each tick
// advances to the first step whose threshold exceeds the current progress;
// past the last step, ticks become no-ops. Callers must invoke the returned
// stop function when the remote call settles, or the ticker keeps firing.
type Simulator struct {
	steps    []Step
	interval time.Duration
}

// NewSimulator creates a simulator. Zero interval falls back to
// DefaultTickInterval; nil steps fall back to DefaultSteps.
func NewSimulator(interval time.Duration, steps []Step) *Simulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if steps == nil {
		steps = DefaultSteps
	}
	return &Simulator{steps: steps, interval: interval}
}

// Start begins ticking. On every tick it reads the current progress through
// current and, when a further step exists, applies it through advance. The
// returned stop function cancels the ticker and is safe to call more than
// once.
func (s *Simulator) Start(current func() int, advance func(progress int, task string)) (stop func()) {
	ticker := time.NewTicker(s.interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if step, ok := s.next(current()); ok {
					advance(step.Threshold, step.Label)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// next returns the first step whose threshold exceeds progress.
func (s *Simulator) next(progress int) (Step, bool) {
	for _, step := range s.steps {
		if step.Threshold > progress {
			return step, true
		}
	}
	return Step{}, false
}
