package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"x rotates", runeKey('x'), core.ActionUp},
		{"down soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"space hard drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop},
		{"c holds", runeKey('c'), core.ActionHold},
		{"C holds", runeKey('C'), core.ActionHold},
		{"p pauses", runeKey('p'), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause},
		{"r restarts", runeKey('r'), core.ActionRestart},
		{"b goes back", runeKey('b'), core.ActionBack},
		{"q quits", runeKey('q'), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestGameKeyMapDisabledBinding(t *testing.T) {
	keys := DefaultGameKeyMap()
	keys.Hold.SetEnabled(false)
	if got := keys.Action(runeKey('c')); got != core.ActionNone {
		t.Errorf("disabled hold = %v, want None", got)
	}
}

func TestMenuKeyMapAction(t *testing.T) {
	keys := DefaultMenuKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := DefaultGameKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total < len(keys.ShortHelp()) {
		t.Errorf("FullHelp has %d bindings, fewer than ShortHelp", total)
	}
}
