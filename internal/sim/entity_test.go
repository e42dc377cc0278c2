package sim

import (
	"testing"
)

func TestEntityCloneIsDeep(t *testing.T) {
	e := player(10, 20, 30, 40)
	e.Meta = map[string]string{"label": "Hero"}
	e.AI = &AIBehavior{Variant: AIPatrol, Speed: 2}
	e.Collectible = &Collectible{Points: 5}
	e.Breakable = &Breakable{Points: 5}
	e.Ball = &Ball{}
	e.Fighter = &Fighter{Health: 100}
	e.Physics = &PhysicsBody{Bounce: 0.5}

	c := e.Clone()
	c.Meta["label"] = "Villain"
	c.Control.Speed = 99
	c.AI.Speed = -2
	c.Collectible.Collected = true
	c.Breakable.Broken = true
	c.Ball.Launched = true
	c.Fighter.Health = 1
	c.Physics.Bounce = 0.1

	if e.Meta["label"] != "Hero" || e.Control.Speed != DefaultMoveSpeed || e.AI.Speed != 2 ||
		e.Collectible.Collected || e.Breakable.Broken || e.Ball.Launched ||
		e.Fighter.Health != 100 || e.Physics.Bounce != 0.5 {
		t.Errorf("Clone() shares state with the original: %+v", e)
	}
}

func TestEntityActive(t *testing.T) {
	tests := []struct {
		name     string
		entity   Entity
		expected bool
	}{
		{"plain", box(0, 0, 1, 1), true},
		{"uncollected", Entity{Collectible: &Collectible{}}, true},
		{"collected", Entity{Collectible: &Collectible{Collected: true}}, false},
		{"broken", Entity{Breakable: &Breakable{Broken: true}}, false},
	}
	for _, tc := range tests {
		if got := tc.entity.Active(); got != tc.expected {
			t.Errorf("%s: Active() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestEntityCenter(t *testing.T) {
	e := box(10, 20, 30, 40)
	if c := e.Center(); c.X != 25 || c.Y != 40 {
		t.Errorf("Center() = %+v, expected (25, 40)", c)
	}
}
