package web

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

func testFrame(n uint64) sim.Frame {
	return sim.Frame{
		State:  sim.StateRunning,
		Number: n,
		HUD:    sim.HUD{Score: 20, Lives: 2},
		Entities: []sim.Entity{
			{ID: 1, Kind: "player", Pos: core.Vec2{X: 10, Y: 20}, Size: core.Vec2{X: 40, Y: 40}, Color: core.ColorBlue},
			{ID: 2, Kind: "coin", Collectible: &sim.Collectible{Points: 10, Collected: true}},
		},
		Particles: []sim.Particle{{Pos: core.Vec2{X: 5, Y: 5}, Life: 12, Color: core.ColorRed}},
	}
}

func TestNewMessage(t *testing.T) {
	m := NewMessage("platformer", testFrame(7))

	if m.Template != "platformer" || m.Frame != 7 || m.State != sim.StateRunning.String() {
		t.Errorf("NewMessage() header = %+v", m)
	}
	if m.HUD.Score != 20 || m.HUD.Lives != 2 {
		t.Errorf("HUD = %+v, expected 20/2", m.HUD)
	}
	if len(m.Entities) != 1 || m.Entities[0].Kind != "player" {
		t.Errorf("Entities = %+v, expected only the visible player", m.Entities)
	}
	if len(m.Particles) != 1 || m.Particles[0].Life != 12 {
		t.Errorf("Particles = %+v, expected one particle", m.Particles)
	}
}

func dial(t *testing.T, srvURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srvURL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	return m
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub("runner", nil)
	hub.Publish(testFrame(1))

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	defer conn.Close()

	// A new spectator gets the latest frame right away.
	if m := readMessage(t, conn); m.Frame != 1 {
		t.Errorf("first message frame = %d, expected 1", m.Frame)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(testFrame(2))
	if m := readMessage(t, conn); m.Frame != 2 || m.Template != "runner" {
		t.Errorf("broadcast = %+v, expected runner frame 2", m)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub("snake", nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.Clients() != 1 {
		t.Fatalf("Clients() = %d, expected 1", hub.Clients())
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for hub.Clients() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after close, expected 0", hub.Clients())
	}
}
