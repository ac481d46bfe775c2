package blocks

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// GameID is the registry and storage identifier of the puzzle.
const GameID = "blocks"

// Package-level configuration set from the CLI before games are created.
var (
	activeConfig   = config.DefaultBlocksConfig()
	activeSettings = DefaultSettings()
)

// SetConfig sets the configuration used by games created afterwards.
// Call it before registry.Create. An invalid config is rejected and the
// previous one stays active.
func SetConfig(cfg config.BlocksConfig) error {
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("blocks config: %w", err)
	}
	activeConfig = cfg
	activeSettings = settings
	return nil
}

// Game adapts a Session to the platform: it owns the cursor, the selected
// piece and display-only state such as the clear banner.
type Game struct {
	cfg      config.BlocksConfig
	settings Settings
	rng      *rand.Rand
	catalog  *Catalog
	session  *Session
	tick     uint64

	screenW int
	screenH int

	cursorRow int
	cursorCol int
	selected  int

	showGrid bool
	paused   bool
	tooSmall bool

	banner      []string
	bannerTicks int
	flash       []Offset
	flashTicks  int
}

// New creates a block puzzle game. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Block Puzzle" }

// Reset starts a new game with cfg's screen size and seed. The high score
// of a previous session survives.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = activeConfig
	g.settings = activeSettings

	highScore := 0
	if g.session != nil {
		highScore = g.session.HighScore()
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.catalog = g.settings.Catalog(g.rng)
	g.session = NewSession(g.catalog, append(g.settings.Options(), WithHighScore(highScore))...)

	g.tick = 0
	g.showGrid = g.cfg.Display.ShowGrid
	g.paused = false
	g.resetCursor()
	g.clearEffects()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	screen := core.NewRect(0, 0, w, h)
	g.tooSmall = !screen.Contains(minScreenW-1, minScreenH-1)
}

func (g *Game) resetCursor() {
	g.selected = 0
	g.cursorRow = 0
	g.cursorCol = 0
	g.clampCursor()
}

func (g *Game) clearEffects() {
	g.banner = nil
	g.bannerTicks = 0
	g.flash = nil
	g.flashTicks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.decayEffects()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.session.Reset()
		g.resetCursor()
		g.clearEffects()
		return core.StepResult{
			State:   g.State(),
			Changed: true,
			Events:  []core.Event{{Kind: core.EventReset}},
		}
	}

	if in.Has(core.ActionToggleGrid) {
		g.showGrid = !g.showGrid
	}

	if g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.handleSelection(in)
	g.handleMovement(in)

	if in.Has(core.ActionConfirm) {
		return g.place()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleSelection(in core.InputFrame) {
	n := len(g.session.pieces)
	switch {
	case in.Has(core.ActionSelect1):
		g.selectPiece(0)
	case in.Has(core.ActionSelect2):
		g.selectPiece(1)
	case in.Has(core.ActionSelect3):
		g.selectPiece(2)
	case in.Has(core.ActionNextPiece):
		g.selectPiece(core.Wrap(g.selected+1, n))
	case in.Has(core.ActionPrevPiece):
		g.selectPiece(core.Wrap(g.selected-1, n))
	}
}

func (g *Game) selectPiece(i int) {
	if i < 0 || i >= len(g.session.pieces) {
		return
	}
	g.selected = i
	g.clampCursor()
}

func (g *Game) handleMovement(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursorRow--
	case in.Has(core.ActionDown):
		g.cursorRow++
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	}
	g.clampCursor()
}

// clampCursor keeps the selected piece's bounding box on the board.
func (g *Game) clampCursor() {
	rows, cols := 1, 1
	if p, ok := g.selectedPiece(); ok {
		rows, cols = p.Bounds()
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, BoardSize-rows)
	g.cursorCol = core.Clamp(g.cursorCol, 0, BoardSize-cols)
}

func (g *Game) selectedPiece() (Piece, bool) {
	if g.session == nil || g.selected < 0 || g.selected >= len(g.session.pieces) {
		return Piece{}, false
	}
	return g.session.pieces[g.selected], true
}

func (g *Game) place() core.StepResult {
	res, ok := g.session.PlacePiece(g.selected, g.cursorRow, g.cursorCol)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	events := []core.Event{{Kind: core.EventPlaced, Value: res.Award.Points}}
	if res.Clear.Lines > 0 {
		events = append(events, core.Event{Kind: core.EventLinesCleared, Value: res.Clear.Lines})
		g.showClear(res)
	}
	if res.GameOver {
		events = append(events, core.Event{Kind: core.EventGameOver, Value: g.session.Score()})
	}

	if res.Refilled {
		g.selected = 0
	} else {
		g.selected = min(g.selected, len(g.session.pieces)-1)
	}
	g.clampCursor()

	return core.StepResult{State: g.State(), Changed: true, Events: events}
}

func (g *Game) showClear(res Placement) {
	var headline string
	if res.Award.Intersection {
		headline = "INTERSECTION!"
	} else {
		headline = fmt.Sprintf("%d LINES!", res.Clear.Lines)
	}
	g.banner = []string{headline}
	if res.Award.Streak > 1 {
		g.banner = append(g.banner, fmt.Sprintf("%dx STREAK!", res.Award.Streak))
	}
	g.banner = append(g.banner, fmt.Sprintf("+%d PTS", res.Award.Points))
	g.bannerTicks = g.cfg.Display.BannerTicks

	g.flash = res.Clear.Cells
	g.flashTicks = g.cfg.Display.FlashTicks
}

func (g *Game) decayEffects() {
	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = nil
		}
	}
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = nil
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.session.Score(),
		HighScore: g.session.HighScore(),
		GameOver:  g.session.GameOver(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Session exposes the underlying session for inspection.
func (g *Game) Session() *Session { return g.session }

// SetHighScore raises the session high score, e.g. from stored scores.
func (g *Game) SetHighScore(score int) {
	if g.session != nil {
		g.session.SeedHighScore(score)
	}
}

// ClearHighScore forgets the session high score.
func (g *Game) ClearHighScore() {
	if g.session != nil {
		g.session.ClearHighScore()
	}
}

// SaveState serializes the session snapshot.
func (g *Game) SaveState() ([]byte, error) {
	if g.session == nil {
		return nil, fmt.Errorf("%w: game not started", ErrInvalidState)
	}
	return MarshalState(g.session.State())
}

// LoadState replaces the session with a saved snapshot. On error the
// current session is kept.
func (g *Game) LoadState(data []byte) error {
	if g.catalog == nil {
		return fmt.Errorf("%w: game not started", ErrInvalidState)
	}
	st, err := UnmarshalState(data)
	if err != nil {
		return err
	}
	opts := g.settings.Options()
	if g.session != nil {
		opts = append(opts, WithHighScore(g.session.HighScore()))
	}
	restored, err := RestoreSession(st, g.catalog, opts...)
	if err != nil {
		return err
	}
	g.session = restored
	g.resetCursor()
	g.clearEffects()
	return nil
}
