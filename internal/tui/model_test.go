package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-chi-calculator/internal/keypad"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update in order and returns the final model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("expected tui.Model, got %T", next)
		}
	}
	return m
}

// typeKeys sends one rune message per character.
func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

func TestTypedKeysDriveEngine(t *testing.T) {
	tests := []struct {
		name       string
		keys       string
		final      []tea.Msg
		display    string
		expression string
	}{
		{name: "chained", keys: "5+3*2", final: []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}}, display: "16", expression: "8 × 2 ="},
		{name: "equals rune", keys: "7x6=", display: "42", expression: "7 × 6 ="},
		{name: "decimal comma", keys: "1,5+1", final: []tea.Msg{runes("=")}, display: "2.5", expression: "1.5 + 1 ="},
		{name: "negate", keys: "12n", display: "-12"},
		{name: "backspace", keys: "123", final: []tea.Msg{tea.KeyMsg{Type: tea.KeyBackspace}}, display: "12"},
		{name: "clear entry", keys: "9+8", final: []tea.Msg{tea.KeyMsg{Type: tea.KeyDelete}}, display: "0", expression: "9 +"},
		{name: "clear", keys: "9+8", final: []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}}, display: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := typeKeys(t, New(Config{}), tc.keys)
			m = send(t, m, tc.final...)

			state := m.State()
			if state.Display != tc.display {
				t.Fatalf("expected display %q, got %q", tc.display, state.Display)
			}
			if state.Expression != tc.expression {
				t.Fatalf("expected expression %q, got %q", tc.expression, state.Expression)
			}
		})
	}
}

func TestCursorNavigationAndPress(t *testing.T) {
	m := New(Config{})
	if got := m.Selected().Key; got != keypad.Digit0 {
		t.Fatalf("expected cursor on 0, got %s", got)
	}

	// 0 -> 2 -> 5
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeySpace})
	m = send(t, m, runes("k"), runes(" "))
	if got := m.State().Display; got != "25" {
		t.Fatalf("expected display %q, got %q", "25", got)
	}

	// wrap from the left column to the right column
	m = send(t, m, runes("h"), runes("h"))
	if got := m.Selected().Key; got != keypad.Subtract {
		t.Fatalf("expected cursor on -, got %s", got)
	}
}

func TestPressMovesCursorToKey(t *testing.T) {
	m := typeKeys(t, New(Config{}), "7")
	if got := m.Selected().Key; got != keypad.Digit7 {
		t.Fatalf("expected cursor on 7, got %s", got)
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := New(Config{}).Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestViewShowsBothDisplaysAndError(t *testing.T) {
	m := typeKeys(t, New(Config{}), "8/2")
	view := m.View()
	if !strings.Contains(view, "8 ÷") {
		t.Fatalf("expected expression line in view:\n%s", view)
	}
	for _, label := range []string{"AC", "CE", "±", "="} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected button %q in view:\n%s", label, view)
		}
	}

	m = typeKeys(t, New(Config{}), "1/0=")
	if !m.State().Error {
		t.Fatal("expected error state")
	}
	if view := m.View(); !strings.Contains(view, "Error: Division by zero") {
		t.Fatalf("expected error text in view:\n%s", view)
	}
}

func TestHelpToggle(t *testing.T) {
	m := New(Config{ShowHelp: false})
	m = send(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("expected full help after ?")
	}
	m = send(t, m, runes("?"))
	if m.help.ShowAll {
		t.Fatal("expected short help after second ?")
	}
}

func TestKeyPressesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := New(Config{Logger: zap.New(core)})

	m = typeKeys(t, m, "4%")

	pressed := logs.FilterMessage("key pressed").All()
	if len(pressed) != 1 {
		t.Fatalf("expected 1 key pressed log, got %d", len(pressed))
	}
	if got := pressed[0].ContextMap()["key"]; got != "4" {
		t.Fatalf("expected key field %q, got %v", "4", got)
	}

	if n := logs.FilterMessage("key ignored").Len(); n != 1 {
		t.Fatalf("expected 1 key ignored log, got %d", n)
	}
}
