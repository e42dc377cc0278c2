package sim

import (
	"testing"
)

func runnerConfig() Config {
	return Config{Scheme: SchemeRunner, ScrollSpeed: 5, Seed: 3}
}

func TestRunnerObstacleRecycles(t *testing.T) {
	obstacle := box(-98, 500, 30, 40)
	obstacle.Deadly = true
	w := newTestWorld(runnerConfig(), obstacle)

	w.Step(none())
	x := w.at(0).Pos.X
	if x < 800 || x >= 800+runnerDeadlySpread {
		t.Errorf("Pos.X = %v, expected in [800, %v)", x, 800+runnerDeadlySpread)
	}
}

func TestRunnerScrollIsNotClamped(t *testing.T) {
	obstacle := box(2, 500, 30, 40)
	obstacle.Deadly = true
	w := newTestWorld(runnerConfig(), obstacle)

	w.Step(none())
	if got := w.at(0).Pos.X; got != -3 {
		t.Errorf("Pos.X = %v, expected -3 (left of the canvas while scrolling)", got)
	}
}

func TestRunnerCollectibleRearms(t *testing.T) {
	coin := box(-97, 400, 20, 20)
	coin.Collectible = &Collectible{Points: 10, Collected: true}
	w := newTestWorld(runnerConfig(), coin)

	w.Step(none())
	got := w.at(0)
	if got.Collectible.Collected {
		t.Error("recycled collectible should be re-armed")
	}
	if got.Pos.X < 800 || got.Pos.X >= 800+runnerCollectSpread {
		t.Errorf("Pos.X = %v, expected in [800, %v)", got.Pos.X, 800+runnerCollectSpread)
	}
}

func TestRunnerCollectedKeepsScrolling(t *testing.T) {
	coin := box(400, 400, 20, 20)
	coin.Collectible = &Collectible{Collected: true}
	w := newTestWorld(runnerConfig(), coin)

	w.Step(none())
	if got := w.at(0).Pos.X; got != 395 {
		t.Errorf("Pos.X = %v, expected 395", got)
	}
}

func TestRunnerSkipsPlayerAndSolids(t *testing.T) {
	p := player(100, 300, 30, 30)
	ground := box(0, 560, 800, 40)
	ground.Solid = true
	w := newTestWorld(runnerConfig(), p, ground)

	w.Step(none())
	if got := w.at(0).Pos.X; got != 100 {
		t.Errorf("player Pos.X = %v, expected 100", got)
	}
	if got := w.at(1).Pos.X; got != 0 {
		t.Errorf("ground Pos.X = %v, expected 0", got)
	}
}

func TestRunnerScenery(t *testing.T) {
	cloud := box(-96, 50, 60, 30)
	w := newTestWorld(runnerConfig(), cloud)
	w.Step(none())
	if got := w.at(0).Pos.X; got < 800 {
		t.Errorf("Pos.X = %v, expected scenery to recycle past the right edge", got)
	}
}

func TestNoScrollWithoutSpeed(t *testing.T) {
	obstacle := box(100, 500, 30, 40)
	obstacle.Deadly = true
	w := newTestWorld(Config{Scheme: SchemeRunner}, obstacle)
	w.Step(none())
	if got := w.at(0).Pos.X; got != 100 {
		t.Errorf("Pos.X = %v, expected 100 with no scroll speed", got)
	}
}

func TestShooterWraps(t *testing.T) {
	enemy := box(759, 300, 40, 40)
	w := newTestWorld(Config{Scheme: SchemeShooter, ScrollSpeed: 2, Seed: 9}, enemy)

	// 761 is past the clamp range but still on the canvas.
	w.Step(none())
	if got := w.at(0).Pos.X; got != 761 {
		t.Fatalf("Pos.X = %v, expected 761", got)
	}

	for w.at(0).Pos.X >= 0 {
		w.Step(none())
	}
	got := w.at(0)
	if got.Pos.X != -40 {
		t.Errorf("Pos.X = %v, expected -40 after wrap", got.Pos.X)
	}
	if got.Pos.Y < 0 || got.Pos.Y >= 600 {
		t.Errorf("Pos.Y = %v, expected in [0, 600)", got.Pos.Y)
	}
}

func TestOtherSchemesDoNotScroll(t *testing.T) {
	obstacle := box(100, 500, 30, 40)
	obstacle.Deadly = true
	w := newTestWorld(Config{Scheme: SchemePlatformer, ScrollSpeed: 5}, obstacle)
	w.Step(none())
	if got := w.at(0).Pos.X; got != 100 {
		t.Errorf("Pos.X = %v, expected 100", got)
	}
}
