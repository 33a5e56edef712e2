package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	id         string
	store      ScoreStore
	logger     *log.Logger
	config     core.RuntimeConfig
	newGame    func() Game
	gameID     string
	gameTitle  string
	screen     sessionScreen
	menu       MenuModel
	gameModel  GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session. newGame builds a fresh game for
// every Play selection.
func NewSessionModel(store ScoreStore, logger *log.Logger, cfg core.RuntimeConfig, newGame func() Game) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	template := newGame()

	m := SessionModel{
		id:        id,
		store:     store,
		logger:    logger.With("session", id),
		config:    cfg,
		newGame:   newGame,
		gameID:    template.ID(),
		gameTitle: template.Title(),
	}
	m.menu = NewMenuModel(m.loadBest(), cfg.ScreenW, cfg.ScreenH)
	return m
}

// ID returns the unique session identifier.
func (m SessionModel) ID() string {
	return m.id
}

func (m SessionModel) loadBest() int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(m.gameID)
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
	}
	return best
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	m.logger.Info("session started")
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		return m.quit()
	case ChoicePlay:
		m.gameModel = NewGameModel(m.newGame(), m.store, m.logger, m.config)
		m.gameModel.canGoBack = true
		m.screen = screenGame
		m.logger.Debug("game started")
		return m, m.gameModel.Init()
	case ChoiceScores:
		m.scoreboard = NewScoreboardModel(m.store, m.gameID, m.gameTitle, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		return m.quit()
	}
	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		return m.quit()
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu returns to a fresh menu. Pending game ticks are dropped by
// updateMenu since the menu ignores TickMsg.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.loadBest(), m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.logger.Info("session ended")
	return m, tea.Quit
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession starts a local menu-driven session.
func RunSession(store ScoreStore, logger *log.Logger, cfg core.RuntimeConfig, newGame func() Game) error {
	p := tea.NewProgram(
		NewSessionModel(store, logger, cfg, newGame),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
