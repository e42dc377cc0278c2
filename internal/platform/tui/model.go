package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/engine"
	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
	"github.com/vovakirdan/tui-gamebuilder/internal/storage"
)

// Options configures the game screens.
type Options struct {
	Context      context.Context // parent of every run; Background if nil
	Store        *storage.Store  // run persistence; nil disables it
	Logger       *log.Logger
	TickRate     int
	SamplePeriod time.Duration
	HoldWindow   time.Duration
	Seed         int64  // 0 = time based
	Player       string // recorded with saved runs
	Observer     engine.Observer
}

func (o Options) withDefaults() Options {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.TickRate <= 0 {
		o.TickRate = sim.DefaultTickRate
	}
	if o.SamplePeriod <= 0 {
		o.SamplePeriod = sim.DefaultSamplePeriod
	}
	return o
}

var (
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(string(core.ColorAlert)))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// GameModel is the editor and play screen of one template. While stopped
// it edits the session's collection; while running it forwards held keys
// to the engine and draws the frames it produces.
type GameModel struct {
	game    registry.Game
	opts    Options
	engine  *engine.Engine
	screen  *core.Screen
	width   int
	height  int
	keys    EditorKeyMap
	play    PlayKeyMap
	help    help.Model
	hold    *HoldTracker
	palette []registry.PaletteEntry

	selected   sim.EntityID
	paletteIdx int
	best       int
	last       *engine.Result
	status     string
	err        error
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the screen for game on a width x height terminal.
func NewGameModel(game registry.Game, opts Options, width, height int) GameModel {
	opts = opts.withDefaults()
	m := GameModel{
		game:    game,
		opts:    opts,
		screen:  core.NewScreen(width, max(height-2, 1)),
		width:   width,
		height:  height,
		keys:    DefaultEditorKeyMap(),
		play:    DefaultPlayKeyMap(),
		help:    help.New(),
		hold:    NewHoldTracker(opts.HoldWindow),
		palette: game.Palette(),
	}
	m.help.Width = width
	m.engine = m.newEngine()
	m.selectFirst()
	if opts.Store != nil {
		if best, err := opts.Store.BestScore(game.ID()); err == nil {
			m.best = best
		}
	}
	return m
}

func (m GameModel) newEngine() *engine.Engine {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := m.game.NewSession(seed, sim.WithLogger(m.opts.Logger.With("template", m.game.ID())))
	return engine.New(session,
		engine.WithTickRate(m.opts.TickRate),
		engine.WithSamplePeriod(m.opts.SamplePeriod),
		engine.WithLogger(m.opts.Logger),
		engine.WithObserver(m.opts.Observer),
	)
}

// Init starts the redraw ticks.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if m.engine.Running() {
			return m.handlePlayKey(msg)
		}
		return m.handleEditorKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-2, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.engine.Running() {
			m.engine.SetInput(m.hold.State(time.Time(msg)))
		}
		return m, tickCmd(m.opts.TickRate)
	}
	return m, nil
}

func (m GameModel) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.play.Quit):
		m.stopRun()
		m.quitting = true
		return m, nil
	case key.Matches(msg, m.play.Stop):
		m.stopRun()
		return m, nil
	}
	if k, ok := gameKey(msg); ok {
		m.hold.Press(k, time.Now())
		m.engine.SetInput(m.hold.State(time.Now()))
	}
	return m, nil
}

func (m GameModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.engine.Session()
	v := m.viewport()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Run):
		m.startRun()
	case key.Matches(msg, m.keys.NextEntity):
		m.cycleSelection(1)
	case key.Matches(msg, m.keys.PrevEntity):
		m.cycleSelection(-1)
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -cellAspect*v.Scale)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, cellAspect*v.Scale)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-v.Scale, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(v.Scale, 0)
	case key.Matches(msg, m.keys.NextPalette):
		if len(m.palette) > 0 {
			m.paletteIdx = (m.paletteIdx + 1) % len(m.palette)
		}
	case key.Matches(msg, m.keys.PrevPalette):
		if len(m.palette) > 0 {
			m.paletteIdx = (m.paletteIdx - 1 + len(m.palette)) % len(m.palette)
		}
	case key.Matches(msg, m.keys.Add):
		if len(m.palette) == 0 {
			break
		}
		e, err := m.game.NewEntity(m.palette[m.paletteIdx].Kind)
		if err != nil {
			m.err = err
			break
		}
		id, err := session.Add(e)
		m.err = err
		if err == nil {
			m.selected = id
		}
	case key.Matches(msg, m.keys.Duplicate):
		id, err := session.Duplicate(m.selected)
		m.err = err
		if err == nil {
			m.selected = id
		}
	case key.Matches(msg, m.keys.Remove):
		if err := session.Remove(m.selected); err != nil {
			m.err = err
			break
		}
		m.selectFirst()
	case key.Matches(msg, m.keys.Reset):
		m.engine = m.newEngine()
		m.last = nil
		m.selectFirst()
		m.status = "template reset"
	}
	return m, nil
}

func (m *GameModel) startRun() {
	m.hold.Reset()
	if err := m.engine.Start(m.opts.Context); err != nil {
		m.err = err
		return
	}
	m.status = ""
	m.opts.Logger.Info("run started", "template", m.game.ID(), "player", m.opts.Player)
}

func (m *GameModel) stopRun() {
	if !m.engine.Running() {
		return
	}
	res, err := m.engine.Stop()
	m.hold.Reset()
	m.last = &res
	if err != nil {
		m.err = err
	}
	m.opts.Logger.Info("run stopped", "template", m.game.ID(), "score", res.HUD.Score, "frames", res.Frames)

	if res.HUD.Score > m.best {
		m.best = res.HUD.Score
	}
	if m.opts.Store != nil && res.HUD.Score > 0 {
		_, err := m.opts.Store.SaveRun(storage.Run{
			TemplateID: m.game.ID(),
			Score:      res.HUD.Score,
			Lives:      res.HUD.Lives,
			Frames:     res.Frames,
			Player:     m.opts.Player,
		})
		if err != nil {
			m.opts.Logger.Warn("could not save run", "error", err)
		}
	}
	m.status = fmt.Sprintf("run over: score %d, lives %d, %d frames", res.HUD.Score, res.HUD.Lives, res.Frames)
}

// Close stops a run in progress.
func (m *GameModel) Close() {
	m.stopRun()
}

func (m *GameModel) selectFirst() {
	m.selected = 0
	if es := m.engine.Session().EditorEntities(); len(es) > 0 {
		m.selected = es[0].ID
	}
}

func (m *GameModel) cycleSelection(step int) {
	es := m.engine.Session().EditorEntities()
	if len(es) == 0 {
		m.selected = 0
		return
	}
	idx := 0
	for i, e := range es {
		if e.ID == m.selected {
			idx = (i + step + len(es)) % len(es)
			break
		}
	}
	m.selected = es[idx].ID
}

func (m *GameModel) nudge(dx, dy float64) {
	session := m.engine.Session()
	err := session.Update(m.selected, func(e *sim.Entity) {
		e.Pos = e.Pos.Add(core.Vec2{X: dx, Y: dy})
	})
	m.err = err
}

func (m GameModel) viewport() Viewport {
	cfg := m.engine.Session().Config()
	return FitCanvas(cfg.CanvasWidth, cfg.CanvasHeight, 0, 1, m.width, max(m.height-3, 3))
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	frame := m.engine.Session().Frame()
	running := frame.State == sim.StateRunning

	m.screen.Clear()
	selected := m.selected
	if running {
		selected = 0
	}
	v := m.viewport()
	DrawFrame(m.screen, v, frame, selected)
	if !running && len(m.engine.Session().EditorEntities()) == 0 {
		m.screen.DrawTextCentered(v.Y+v.Rows/2, "empty canvas: press a to add an object", core.ColorGray)
	}

	var b strings.Builder
	b.WriteString(hudStyle.Render(m.hudLine(frame)))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(statusStyle.Render(m.statusLine(running)))
	}
	b.WriteString("\n")
	if running {
		b.WriteString(helpStyle.Render(m.help.View(m.play)))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m GameModel) hudLine(frame sim.Frame) string {
	hud := frame.HUD
	mode := "EDIT"
	if frame.State == sim.StateRunning {
		hud = m.engine.HUD()
		mode = fmt.Sprintf("PLAY %d", frame.Number)
	} else if m.last != nil {
		hud = m.last.HUD
	}
	return fmt.Sprintf(" %s  |  Score %d  Lives %d  Best %d  |  %s",
		m.game.Title(), hud.Score, hud.Lives, m.best, mode)
}

func (m GameModel) statusLine(running bool) string {
	if running {
		return " arrows/wasd move, space jumps"
	}
	if m.status != "" {
		return " " + m.status
	}

	var parts []string
	for _, e := range m.engine.Session().EditorEntities() {
		if e.ID == m.selected {
			parts = append(parts, fmt.Sprintf("#%d %s at (%.0f,%.0f) %.0fx%.0f", e.ID, e.Kind, e.Pos.X, e.Pos.Y, e.Size.X, e.Size.Y))
			break
		}
	}
	if len(m.palette) > 0 {
		parts = append(parts, "palette: "+m.palette[m.paletteIdx].Label)
	}
	return " " + strings.Join(parts, "  |  ")
}

// Engine returns the engine driving the current session.
func (m GameModel) Engine() *engine.Engine {
	return m.engine
}

// Selected returns the selected entity id, 0 for none.
func (m GameModel) Selected() sim.EntityID {
	return m.selected
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
