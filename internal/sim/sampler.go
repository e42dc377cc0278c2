package sim

import (
	"context"
	"sync"
	"time"
)

// DefaultSamplePeriod is the HUD sampling cadence.
const DefaultSamplePeriod = 100 * time.Millisecond

// HUDSampler copies the counters into a presentation-facing snapshot at its
// own cadence. Readers see values at most one period old.
type HUDSampler struct {
	counters *Counters
	period   time.Duration

	mu     sync.RWMutex
	latest HUD
}

// NewHUDSampler creates a sampler over counters. A non-positive period
// selects DefaultSamplePeriod.
func NewHUDSampler(counters *Counters, period time.Duration) *HUDSampler {
	if period <= 0 {
		period = DefaultSamplePeriod
	}
	return &HUDSampler{counters: counters, period: period, latest: counters.Snapshot()}
}

// Run samples until ctx is cancelled.
func (h *HUDSampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.Sample()
		}
	}
}

// Sample takes one snapshot immediately.
func (h *HUDSampler) Sample() {
	snap := h.counters.Snapshot()
	h.mu.Lock()
	h.latest = snap
	h.mu.Unlock()
}

// Latest returns the last sampled values.
func (h *HUDSampler) Latest() HUD {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}
