package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateMenu(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuSelection(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	tests := []struct {
		name string
		msgs []tea.Msg
		want MenuChoice
	}{
		{"browsing", []tea.Msg{down}, ChoiceNone},
		{"play", []tea.Msg{enter}, ChoicePlay},
		{"scores", []tea.Msg{down, enter}, ChoiceScores},
		{"quit item", []tea.Msg{down, down, enter}, ChoiceQuit},
		{"cursor stops at last", []tea.Msg{down, down, down, down, enter}, ChoiceQuit},
		{"cursor stops at first", []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}, enter}, ChoicePlay},
		{"q quits", []tea.Msg{runeKey('q')}, ChoiceQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := updateMenu(t, NewMenuModel(0, 80, 24), tt.msgs...)
			if got := m.Selected(); got != tt.want {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMenuViewShowsBest(t *testing.T) {
	view := NewMenuModel(4321, 80, 24).View()
	for _, want := range []string{"T E T R I S", "Best: 4321", "Play", "High Scores", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestScoreboardPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		store ScoreStore
		want  string
	}{
		{"no store", nil, "Score storage is unavailable."},
		{"load error", &fakeStore{err: errors.New("locked")}, "Could not load scores"},
		{"empty", &fakeStore{}, "No scores recorded yet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewScoreboardModel(tt.store, "fake", "Fake", 80, 24).View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	sb := NewScoreboardModel(nil, "fake", "Fake", 80, 24)

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
	next, _ = sb.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func newTestSession(game *fakeGame, store ScoreStore) SessionModel {
	return NewSessionModel(store, nil, testConfig(), func() Game { return game })
}

func updateSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionPlayAndBack(t *testing.T) {
	game := &fakeGame{}
	store := &fakeStore{best: 10}
	m := newTestSession(game, store)

	if m.ID() == "" {
		t.Fatal("session has no ID")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}

	game.started, game.gameOver, game.score = true, true, 50
	m = updateSession(t, m, TickMsg{Loop: m.gameModel.loop}, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.best != 50 {
		t.Errorf("menu best = %d, want 50", m.menu.best)
	}
}

func TestSessionDropsTicksInMenu(t *testing.T) {
	game := &fakeGame{}
	m := newTestSession(game, nil)
	m = updateSession(t, m, TickMsg{Loop: 1})
	if game.steps != 0 {
		t.Errorf("menu stepped the game %d times", game.steps)
	}
}

func TestSessionScoresAndQuit(t *testing.T) {
	m := newTestSession(&fakeGame{}, &fakeStore{})

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES - Fake") {
		t.Error("scoreboard title missing")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
