package sim

import (
	"sync"
	"testing"
)

func TestCounters(t *testing.T) {
	c := NewCounters()
	if got := c.Snapshot(); got != (HUD{Score: 0, Lives: DefaultLives}) {
		t.Fatalf("Snapshot() = %+v, expected {0 %d}", got, DefaultLives)
	}

	c.AddScore(10)
	c.AddScore(-5)
	c.AddScore(0)
	if got := c.Snapshot().Score; got != 10 {
		t.Errorf("Score = %d, expected 10 (score never decreases)", got)
	}

	for i := 0; i < 5; i++ {
		c.LoseLife()
	}
	if got := c.Snapshot().Lives; got != 0 {
		t.Errorf("Lives = %d, expected 0", got)
	}

	c.Reset()
	if got := c.Snapshot(); got != (HUD{Score: 0, Lives: DefaultLives}) {
		t.Errorf("after Reset: %+v", got)
	}
}

func TestCountersConcurrentReaders(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.AddScore(1)
		}
	}()
	go func() {
		defer wg.Done()
		last := 0
		for i := 0; i < 1000; i++ {
			s := c.Snapshot().Score
			if s < last {
				t.Errorf("score went backwards: %d after %d", s, last)
				return
			}
			last = s
		}
	}()
	wg.Wait()
	if got := c.Snapshot().Score; got != 1000 {
		t.Errorf("Score = %d, expected 1000", got)
	}
}
