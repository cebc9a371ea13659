package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/engine"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// helpRows is the space below the game screen reserved for the help bar.
const helpRows = 1

// Options configures a game model.
type Options struct {
	Game     config.PaddleConfig
	Runtime  core.RuntimeConfig
	Store    engine.ScoreStore // May be nil: best score kept in memory
	Recorder storage.Recorder  // May be nil: rounds are not recorded
	Logger   *log.Logger

	// ScreenshotDir is where ctrl+s writes the current screen.
	// Defaults to ~/.paddle/screenshots.
	ScreenshotDir string
	NoScreenshots bool

	// Clock overrides the engine's time source.
	Clock engine.Clock
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	engine   *engine.Engine
	screen   *core.Screen
	recorder storage.Recorder
	logger   *log.Logger
	config   core.RuntimeConfig
	intents  *core.IntentQueue
	keys     KeyMap
	help     help.Model

	screenshotDir string
	noScreenshots bool
	status        string // One-line notice shown in the help bar
	paused        bool
	quitting      bool
	recorded      bool // Whether the current game over has been recorded
}

// NewModel creates a game model.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = opts.Game.Timing.TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engineOpts := []engine.Option{engine.WithParams(engine.ParamsFromConfig(opts.Game))}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(opts.Clock))
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		engine:        engine.New(opts.Game.Arena.Width, opts.Game.Arena.Height, opts.Store, engineOpts...),
		screen:        core.NewScreen(rt.ScreenW, rt.ScreenH-helpRows),
		recorder:      opts.Recorder,
		logger:        logger,
		config:        rt,
		intents:       core.NewIntentQueue(core.DefaultQueueSize),
		keys:          DefaultKeyMap(),
		help:          h,
		screenshotDir: opts.ScreenshotDir,
		noScreenshots: opts.NoScreenshots,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey turns a key press into an intent. Movement and reset are queued
// for the next tick; quit, pause and screenshots act immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if !m.noScreenshots {
			m.saveScreenshot()
		}
		return m, nil
	}

	intent := m.keys.Intent(msg, m.engine.State() == engine.StateGameOver)
	switch intent {
	case core.IntentQuit:
		m.quitting = true
		return m, tea.Quit
	case core.IntentPause:
		if m.engine.State() == engine.StatePlaying {
			m.paused = !m.paused
			m.intents.Clear()
		}
	case core.IntentNone:
	default:
		if !m.paused {
			m.intents.Push(intent)
		}
	}

	return m, nil
}

// handleResize processes window resize events. The arena keeps its size in
// arena units; only the cell scaling changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-helpRows)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies queued intents and advances the simulation one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	for _, intent := range m.intents.Drain() {
		m.engine.Apply(intent)
	}
	m.engine.Tick()

	if m.engine.State() == engine.StateGameOver {
		if !m.recorded {
			m.recordRound()
			m.recorded = true
		}
	} else {
		m.recorded = false
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRound stores the finished round in the history, if there is one.
func (m *Model) recordRound() {
	snap := m.engine.Snapshot()
	m.logger.Debug("round over", "score", snap.Score, "level", snap.Level, "ticks", snap.Tick)

	if m.recorder == nil {
		return
	}
	_, err := m.recorder.RecordRound(storage.Round{
		Score: snap.Score,
		Level: snap.Level,
		Ticks: snap.Tick,
	})
	if err != nil {
		m.logger.Warn("could not record round", "error", err)
	}
}

// saveScreenshot writes the current screen to a text file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.engine.Snapshot(), m.paused)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = "screenshot failed"
			m.logger.Warn("cannot resolve home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".paddle", "screenshots")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("paddle_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		m.logger.Warn("cannot write screenshot", "path", path, "error", err)
		return
	}

	m.status = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.engine.Snapshot(), m.paused)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// Snapshot returns the engine state the next frame will show.
func (m Model) Snapshot() engine.Snapshot {
	return m.engine.Snapshot()
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
