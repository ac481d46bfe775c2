package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Options configures a game model.
type Options struct {
	// Store persists scores and saved games. Nil disables persistence.
	Store *storage.Store
	// Player names the saved game slot and score rows.
	Player string
	// Logger receives persistence warnings. Nil discards them.
	Logger *log.Logger
	// Resume loads the player's saved game if there is one.
	Resume bool
}

// Model is the Bubble Tea model for running a single game. It is used
// directly by `blocks play` and embedded by SessionModel for the menu flow.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     string
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	showHelp   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
	standalone bool // Back quits instead of returning to a menu
}

// NewModel creates a model for game and starts it: the game is reset, its
// high score is seeded from the store and, with opts.Resume, the saved game
// is restored.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = true

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		player:     opts.Player,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}

	m.game.Reset(m.config)
	m.seedHighScore()
	if opts.Resume {
		m.resume()
	}
	m.gameState = m.game.State()
	// A restored finished game must not record its score a second time.
	m.scoreSaved = m.gameState.GameOver

	return m
}

func (m *Model) seedHighScore() {
	hs, ok := m.game.(registry.HighScorer)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not read high score", "game", m.game.ID(), "error", err)
		return
	}
	hs.SetHighScore(best)
}

// resume restores the saved game. A blob the game rejects is dropped so the
// player is not stuck with it.
func (m *Model) resume() {
	p, ok := m.game.(registry.Persistent)
	if !ok || m.store == nil {
		return
	}
	data, err := m.store.LoadSession(m.player, m.game.ID())
	if errors.Is(err, storage.ErrNoSession) {
		return
	}
	if err != nil {
		m.logger.Warn("could not load saved game", "player", m.player, "error", err)
		return
	}
	if err := p.LoadState(data); err != nil {
		m.logger.Warn("discarding corrupt saved game", "player", m.player, "error", err)
		if err := m.store.DeleteSession(m.player, m.game.ID()); err != nil {
			m.logger.Warn("could not delete saved game", "player", m.player, "error", err)
		}
		return
	}
	m.logger.Debug("resumed saved game", "player", m.player, "score", m.game.State().Score)
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

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		// Any key closes the help page.
		m.showHelp = false
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if core.Has(result.Events, core.EventReset) {
		// The abandoned game still counts towards the best score.
		if !m.scoreSaved {
			m.recordScore(prev.Score, "game abandoned")
		}
		m.scoreSaved = false
	}
	if result.Changed {
		m.persist(result)
	}

	return m, tickCmd(m.config.TickRate)
}

// persist writes the outcome of a changing step: the snapshot while the game
// runs, the score once it ends.
func (m *Model) persist(result core.StepResult) {
	if m.store == nil {
		return
	}
	id := m.game.ID()

	if result.State.GameOver {
		if !m.scoreSaved {
			m.recordScore(result.State.Score, "game over")
		}
		m.scoreSaved = true
		if err := m.store.DeleteSession(m.player, id); err != nil {
			m.logger.Warn("could not delete saved game", "game", id, "error", err)
		}
		return
	}

	p, ok := m.game.(registry.Persistent)
	if !ok {
		return
	}
	data, err := p.SaveState()
	if err != nil {
		m.logger.Warn("could not snapshot game", "game", id, "error", err)
		return
	}
	if err := m.store.SaveSession(m.player, id, data); err != nil {
		m.logger.Warn("could not save game", "game", id, "error", err)
	}
}

// recordScore adds a non-zero score to the scores table.
func (m *Model) recordScore(score int, reason string) {
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, score); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info(reason, "player", m.player, "score", score)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		page := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render("KEYS"),
			"",
			m.help.View(m.keyMapper.Keys()),
			"",
			helpStyle.Render("press any key to return"),
		)
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, page)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program with a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
