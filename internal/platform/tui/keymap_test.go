package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bear-run/internal/core"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionJump},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{"?", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, core.ActionHelp},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}
