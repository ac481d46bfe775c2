package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceContinue
	MenuChoiceNewGame
	MenuChoiceScores
	MenuChoiceResetScores
	MenuChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Label  string
	Choice MenuChoice
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	gameID    string
	title     string
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	player    string
	logger    *log.Logger
	keyMapper *KeyMapper
	best      int
	hasSave   bool
	confirm   bool // Reset High Score was pressed once
	status    string
	statusErr bool
	quitting  bool
	chosen    MenuChoice
}

// NewMenuModel creates a menu for gameID. Continue is offered only when the
// player has a saved game.
func NewMenuModel(gameID string, store *storage.Store, player string, logger *log.Logger, cfg core.RuntimeConfig) MenuModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := MenuModel{
		gameID:    gameID,
		title:     registry.Title(gameID),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		player:    player,
		logger:    logger,
		keyMapper: NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh reloads the best score and the saved game flag and rebuilds the
// item list.
func (m *MenuModel) refresh() {
	m.best = 0
	m.hasSave = false
	if m.store != nil {
		if best, err := m.store.HighScore(m.gameID); err == nil {
			m.best = best
		} else {
			m.logger.Warn("could not read high score", "error", err)
		}
		_, err := m.store.LoadSession(m.player, m.gameID)
		m.hasSave = err == nil
		if err != nil && !errors.Is(err, storage.ErrNoSession) {
			m.logger.Warn("could not check saved game", "player", m.player, "error", err)
		}
	}

	m.items = m.items[:0]
	if m.hasSave {
		m.items = append(m.items, MenuItem{Label: "Continue", Choice: MenuChoiceContinue})
	}
	m.items = append(m.items,
		MenuItem{Label: "New Game", Choice: MenuChoiceNewGame},
		MenuItem{Label: "High Scores", Choice: MenuChoiceScores},
		MenuItem{Label: "Reset High Score", Choice: MenuChoiceResetScores},
		MenuItem{Label: "Quit", Choice: MenuChoiceQuit},
	)
	m.cursor = core.Clamp(m.cursor, 0, len(m.items)-1)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action != MenuActionSelect {
		m.confirm = false
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, len(m.items))
		m.status = ""

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, len(m.items))
		m.status = ""

	case MenuActionSelect:
		return m.selectItem()
	}

	return m, nil
}

func (m MenuModel) selectItem() (tea.Model, tea.Cmd) {
	item := m.items[m.cursor]
	switch item.Choice {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceResetScores:
		if !m.confirm {
			m.confirm = true
			m.setStatus("Press Enter again to erase all scores", false)
			return m, nil
		}
		m.confirm = false
		if m.store == nil {
			m.setStatus("No score database", true)
			return m, nil
		}
		if err := ResetHighScores(m.store, m.gameID); err != nil {
			m.logger.Error("could not reset high scores", "error", err)
			m.setStatus("Reset failed: "+err.Error(), true)
			return m, nil
		}
		m.logger.Info("high scores reset", "game", m.gameID, "player", m.player)
		m.refresh()
		m.setStatus("High score reset", false)
		return m, nil

	case MenuChoiceNewGame:
		if m.store != nil {
			if err := DiscardSavedGame(m.store, m.gameID, m.player); err != nil {
				m.logger.Warn("could not discard saved game", "player", m.player, "error", err)
			}
		}
	}

	m.chosen = item.Choice
	return m, nil
}

func (m *MenuModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(strings.ToUpper(m.title), m.width)))
	b.WriteString("\n\n")

	best := fmt.Sprintf("Best: %d", m.best)
	if m.player != "" {
		best = fmt.Sprintf("Player: %s   %s", m.player, best)
	}
	b.WriteString(centerText(best, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(centerText(m.status, m.width)))
	}
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the picked item, or MenuChoiceNone.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// ResetHighScores erases every recorded score of gameID and clears the best
// score carried inside each saved game, so the reset survives a resume.
// Saved games the game cannot load are left as they are.
func ResetHighScores(store *storage.Store, gameID string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}

	saved, err := store.ListSessions(gameID)
	if err != nil {
		return err
	}

	for _, s := range saved {
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		p, ok := game.(registry.Persistent)
		hs, ok2 := game.(registry.HighScorer)
		if !ok || !ok2 {
			return nil
		}

		game.Reset(core.DefaultConfig())
		if err := p.LoadState(s.State); err != nil {
			continue
		}
		hs.ClearHighScore()

		data, err := p.SaveState()
		if err != nil {
			return fmt.Errorf("snapshot %s's game: %w", s.Player, err)
		}
		if err := store.SaveSession(s.Player, gameID, data); err != nil {
			return err
		}
	}

	return nil
}

// DiscardSavedGame drops the player's saved game of gameID. Its score is
// recorded first so abandoning a game never lowers the best score. A save the
// game cannot load is dropped without a score.
func DiscardSavedGame(store *storage.Store, gameID, player string) error {
	data, err := store.LoadSession(player, gameID)
	if errors.Is(err, storage.ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if p, ok := game.(registry.Persistent); ok {
		game.Reset(core.DefaultConfig())
		if p.LoadState(data) == nil {
			st := game.State()
			if !st.GameOver && st.Score > 0 {
				if _, err := store.SaveScore(gameID, player, st.Score); err != nil {
					return err
				}
			}
		}
	}

	return store.DeleteSession(player, gameID)
}
