// Package tui is the terminal front end: a bubbletea model that owns one
// calculator engine and renders its displays above a button grid.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/model"
)

const keyLegend = "0-9 . + - * / · enter = · esc AC · del CE · ⌫"

// Config holds TUI settings
type Config struct {
	ShowHelp bool
	Logger   *zap.Logger
}

// Model is the bubbletea model for the calculator
type Model struct {
	calc *model.Calculator

	// Cursor over keypad.Grid
	row int
	col int

	width  int
	height int

	keys   keyMap
	help   help.Model
	logger *zap.Logger
}

// New creates a Model with a fresh engine and the cursor on "0".
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	row, col, _ := keypad.Find(keypad.Digit0)

	return Model{
		calc:   model.New(),
		row:    row,
		col:    col,
		keys:   defaultKeyMap(),
		help:   h,
		logger: logger,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)

	case key.Matches(msg, m.keys.Press):
		m.press(m.Selected().Key)

	case key.Matches(msg, m.keys.Negate):
		m.press(keypad.ToggleSign)

	default:
		k, err := keypad.Parse(msg.String())
		if err != nil {
			m.logger.Debug("key ignored", zap.String("key", msg.String()))
			return m, nil
		}
		m.press(k)
	}

	return m, nil
}

// press applies k to the engine and moves the cursor to its button.
func (m *Model) press(k keypad.Key) {
	keypad.Press(m.calc, k)

	if row, col, ok := keypad.Find(k); ok {
		m.row, m.col = row, col
	}

	m.logger.Debug("key pressed",
		zap.String("key", k.Name()),
		zap.String("display", m.calc.CurrentDisplay()),
		zap.String("expression", m.calc.ExpressionDisplay()),
		zap.Bool("error", m.calc.HasError()),
	)
}

// move shifts the cursor, wrapping at the grid edges.
func (m *Model) move(dr, dc int) {
	rows := len(keypad.Grid)
	m.row = (m.row + dr + rows) % rows
	cols := len(keypad.Grid[m.row])
	m.col = (m.col + dc + cols) % cols
}

// Selected returns the button under the cursor.
func (m Model) Selected() keypad.Button {
	return keypad.Grid[m.row][m.col]
}

// State returns the engine's observable state.
func (m Model) State() model.State {
	return m.calc.Snapshot()
}

// View renders the calculator
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Calculator"))
	b.WriteString("\n")
	b.WriteString(m.renderDisplay())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(keyLegend))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderDisplay() string {
	display := DisplayStyle
	if m.calc.HasError() {
		display = DisplayErrorStyle
	}

	return DisplayBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Right,
		ExpressionStyle.Render(m.calc.ExpressionDisplay()),
		display.Render(m.calc.CurrentDisplay()),
	))
}

func (m Model) renderGrid() string {
	rows := make([]string, 0, len(keypad.Grid))
	for r, cells := range keypad.Grid {
		rendered := make([]string, 0, len(cells))
		for c, btn := range cells {
			style := buttonStyle(btn.Kind)
			if r == m.row && c == m.col {
				style = SelectedButtonStyle
			}
			rendered = append(rendered, style.Render(btn.Label()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
