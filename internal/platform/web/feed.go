// Package web serves a read-only spectator feed: every sampled frame is
// broadcast as JSON to the connected websocket clients.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

const writeTimeout = time.Second

// EntityView is the wire form of one entity.
type EntityView struct {
	ID     sim.EntityID `json:"id"`
	Kind   string       `json:"kind"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Width  float64      `json:"w"`
	Height float64      `json:"h"`
	Color  core.Color   `json:"color,omitempty"`
}

// ParticleView is the wire form of one particle.
type ParticleView struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Life  int        `json:"life"`
	Color core.Color `json:"color,omitempty"`
}

// Message is one broadcast frame.
type Message struct {
	Template  string         `json:"template,omitempty"`
	State     string         `json:"state"`
	Frame     uint64         `json:"frame"`
	HUD       sim.HUD        `json:"hud"`
	Entities  []EntityView   `json:"entities"`
	Particles []ParticleView `json:"particles"`
}

// NewMessage converts a frame. Entities that are collected or broken are
// left out, as they are not drawn.
func NewMessage(template string, f sim.Frame) Message {
	m := Message{
		Template:  template,
		State:     f.State.String(),
		Frame:     f.Number,
		HUD:       f.HUD,
		Entities:  make([]EntityView, 0, len(f.Entities)),
		Particles: make([]ParticleView, 0, len(f.Particles)),
	}
	for _, e := range f.Entities {
		if !e.Visible() {
			continue
		}
		m.Entities = append(m.Entities, EntityView{
			ID: e.ID, Kind: e.Kind,
			X: e.Pos.X, Y: e.Pos.Y, Width: e.Size.X, Height: e.Size.Y,
			Color: e.Color,
		})
	}
	for _, p := range f.Particles {
		m.Particles = append(m.Particles, ParticleView{X: p.Pos.X, Y: p.Pos.Y, Life: p.Life, Color: p.Color})
	}
	return m
}

// Hub tracks spectators and fans frames out to them.
type Hub struct {
	template string
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
}

// client serializes writes; gorilla allows one writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// NewHub creates a hub for one template's session.
func NewHub(template string, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		template: template,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish broadcasts a frame. It satisfies engine.Observer.
func (h *Hub) Publish(f sim.Frame) {
	data, err := json.Marshal(NewMessage(h.template, f))
	if err != nil {
		h.logger.Error("marshal frame", "error", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.logger.Debug("dropping spectator", "remote", c.conn.RemoteAddr().String(), "error", err)
			h.drop(c)
		}
	}
}

// ServeHTTP upgrades the request and keeps the spectator until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	latest := h.latest
	h.mu.Unlock()
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	if latest != nil {
		if err := c.write(latest); err != nil {
			h.drop(c)
			return
		}
	}

	// Spectators never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(c)
			h.logger.Info("spectator left", "remote", r.RemoteAddr)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended")
	for c := range clients {
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		c.conn.Close()
	}
}

// Serve runs an HTTP server exposing the hub at /ws until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
