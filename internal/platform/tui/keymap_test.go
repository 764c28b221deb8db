package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ringrun/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key      string
		expected core.Action
	}{
		{" ", core.ActionHold},
		{"up", core.ActionHold},
		{"w", core.ActionHold},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"b", core.ActionBack},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := km.MapKey(keyMsg(tt.key)); got != tt.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestKeyMapperMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if quit := km.MapKeyToFrame(keyMsg(" "), &frame); quit {
		t.Error("space reported as quit")
	}
	if !frame.Has(core.ActionHold) {
		t.Error("space did not set the hold action")
	}
	if quit := km.MapKeyToFrame(keyMsg("q"), &frame); !quit {
		t.Error("q not reported as quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be written to the frame")
	}
}
