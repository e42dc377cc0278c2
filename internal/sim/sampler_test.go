package sim

import (
	"context"
	"testing"
	"time"
)

func TestHUDSamplerLagsUntilSample(t *testing.T) {
	c := NewCounters()
	h := NewHUDSampler(c, 0)
	if h.period != DefaultSamplePeriod {
		t.Errorf("period = %v, expected %v", h.period, DefaultSamplePeriod)
	}

	c.AddScore(30)
	if got := h.Latest().Score; got != 0 {
		t.Errorf("Latest().Score = %d before sampling, expected 0", got)
	}
	h.Sample()
	if got := h.Latest(); got.Score != 30 || got.Lives != DefaultLives {
		t.Errorf("Latest() = %+v, expected {30 %d}", got, DefaultLives)
	}
}

func TestHUDSamplerRun(t *testing.T) {
	c := NewCounters()
	h := NewHUDSampler(c, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.Run(ctx) }()

	c.LoseLife()
	deadline := time.Now().Add(2 * time.Second)
	for h.Latest().Lives != DefaultLives-1 {
		if time.Now().After(deadline) {
			t.Fatal("sampler never observed the counter change")
		}
		time.Sleep(time.Millisecond)
	}
}
