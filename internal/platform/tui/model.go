package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpRows is the number of terminal rows reserved below the game screen.
const helpRows = 1

// Game is the contract the terminal loop drives once per tick.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(input core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Optional game capabilities, discovered by type assertion.
type (
	highScoreSetter interface{ SetHighScore(score int) }
	resizer         interface{ Resize(width, height int) }
	pointerTarget   interface{ PointerArea() core.Rect }
	sessionStats    interface {
		Lines() int
		Level() int
	}
)

// ScoreStore is the persistence used by the terminal screens.
type ScoreStore interface {
	HighScore(gameID string) (int, error)
	RecordHighScore(gameID string, score int) (bool, error)
	SaveScore(gameID string, score, lines, level int) (int64, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// StoreOrNil converts a possibly nil *storage.Store into a ScoreStore
// without producing a non-nil interface around a nil pointer.
func StoreOrNil(s *storage.Store) ScoreStore {
	if s == nil {
		return nil
	}
	return s
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       Game
	screen     *core.Screen
	store      ScoreStore
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	loop       uint64 // Tick loop ID, see TickMsg
	best       int
	quitting   bool
	backToMenu bool
	canGoBack  bool // Whether a menu exists to go back to
	scoreSaved bool // Whether the score has been saved for the current game over
}

// NewGameModel creates a model for the given game. The persisted best score
// is loaded immediately so the first frame shows it.
func NewGameModel(game Game, store ScoreStore, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = max(0, cfg.ScreenH-helpRows)

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		loop:       nextLoopID(),
	}
	m.help.Width = cfg.ScreenW

	if store != nil {
		best, err := store.HighScore(game.ID())
		if err != nil {
			logger.Warn("could not load high score", "game", game.ID(), "error", err)
		}
		m.best = best
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if s, ok := m.game.(highScoreSetter); ok {
		s.SetHighScore(m.best)
	}
	m.logger.Debug("game initialized", "game", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.canGoBack && (m.gameState.GameOver || m.gameState.Paused || !m.gameState.Started) {
			m.backToMenu = true
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse maps left clicks on the game's pointer area to actions.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if pt, ok := m.game.(pointerTarget); ok {
		m.inputFrame.Set(core.PointerZoneAction(pt.PointerArea(), msg.X, msg.Y))
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(0, msg.Height-helpRows)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one simulation step and persists score changes.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	if m.gameState.Score > m.best {
		m.best = m.gameState.Score
		if s, ok := m.game.(highScoreSetter); ok {
			s.SetHighScore(m.best)
		}
		if m.store != nil {
			raised, err := m.store.RecordHighScore(m.game.ID(), m.best)
			if err != nil {
				m.logger.Warn("could not record high score", "game", m.game.ID(), "error", err)
			} else if raised {
				m.logger.Debug("new high score", "game", m.game.ID(), "score", m.best)
			}
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.loop, m.config.TickRate)
}

// saveScore records the finished session.
func (m GameModel) saveScore() {
	lines, level := 0, 1
	if s, ok := m.game.(sessionStats); ok {
		lines, level = s.Lines(), s.Level()
	}
	m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score, "lines", lines, "level", level)

	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, lines, level); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game screen followed by the help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state after the most recent tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Best returns the best score known to the model.
func (m GameModel) Best() int {
	return m.best
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the game.
func Run(game Game, store ScoreStore, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
