package simnode

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// DefaultStepInterval is the tick interval when none is configured.
const DefaultStepInterval = 5 * time.Second

// Stepper drives a random walk over a node's numeric sensor values.
// Only readable, non-writeable number values without enumerated states
// are stepped; everything else is left alone.
type Stepper struct {
	node     *SimNode
	interval time.Duration
	rng      *rand.Rand

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewStepper creates a stepper for the given node. A zero interval uses
// DefaultStepInterval.
func NewStepper(node *SimNode, interval time.Duration) *Stepper {
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	return &Stepper{
		node:     node,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Running returns true while the simulation loop is active.
func (st *Stepper) Running() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.running
}

// Start launches the simulation loop. Starting a running stepper is a
// no-op.
func (st *Stepper) Start(ctx context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.running {
		return
	}

	ctx, st.cancel = context.WithCancel(ctx)
	st.running = true
	go st.run(ctx)
	log.Println("[SIM] Simulation started")
}

// Stop halts the simulation loop.
func (st *Stepper) Stop() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.running {
		return
	}
	st.cancel()
	st.running = false
	log.Println("[SIM] Simulation stopped")
}

func (st *Stepper) run(ctx context.Context) {
	ticker := time.NewTicker(st.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.step()
		}
	}
}

// step advances every eligible sensor value by a small random amount
// within its declared bounds.
func (st *Stepper) step() {
	for _, id := range st.node.ValueIDs() {
		meta, err := st.node.Metadata(id)
		if err != nil {
			continue
		}
		if !st.eligible(meta) {
			continue
		}

		current, err := st.node.Get(id)
		if err != nil {
			continue
		}

		next := st.next(meta, current)
		if err := st.node.SetInternal(id, next); err != nil {
			log.Printf("[SIM] Failed to update %s: %v", id, err)
			continue
		}
		log.Printf("[SIM] %s = %v%s", id, next, unitSuffix(meta))
	}
}

func (st *Stepper) eligible(meta fixture.Metadata) bool {
	return meta.Type == fixture.TypeNumber &&
		meta.Readable &&
		!meta.Writeable &&
		len(meta.States) == 0
}

// next computes the new value: a random walk of up to 5% of the value
// range, clamped to the declared bounds.
func (st *Stepper) next(meta fixture.Metadata, current any) float64 {
	lo, hi := 0.0, 100.0
	if meta.Min != nil {
		lo = *meta.Min
	}
	if meta.Max != nil {
		hi = *meta.Max
	}
	if hi <= lo {
		return lo
	}

	base, ok := toFloat64(current)
	if !ok {
		base = lo + (hi-lo)/2
	}

	delta := (st.rng.Float64()*2 - 1) * (hi - lo) * 0.05
	next := base + delta
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}

	// Keep one decimal so logs and payloads stay readable.
	return float64(int(next*10)) / 10
}

func unitSuffix(meta fixture.Metadata) string {
	if meta.Unit == "" {
		return ""
	}
	return " " + meta.Unit
}
