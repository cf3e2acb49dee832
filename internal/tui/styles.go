package tui

import (
	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/keypad"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorBg        = lipgloss.Color("#1F2937")
	colorFg        = lipgloss.Color("#F9FAFB")
)

const (
	displayWidth = 4*buttonWidth + 3
	buttonWidth  = 7
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	// Display styles
	DisplayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	ExpressionStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(displayWidth).
			Align(lipgloss.Right)

	DisplayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			Width(displayWidth).
			Align(lipgloss.Right)

	DisplayErrorStyle = DisplayStyle.
				Foreground(colorError)

	// Button styles
	buttonBase = lipgloss.NewStyle().
			Width(buttonWidth).
			Align(lipgloss.Center).
			Background(colorBg).
			MarginRight(1)

	NumberButtonStyle    = buttonBase.Foreground(colorFg)
	OperationButtonStyle = buttonBase.Foreground(colorAccent).Bold(true)
	ClearButtonStyle     = buttonBase.Foreground(colorError)
	EqualsButtonStyle    = buttonBase.Foreground(colorSecondary).Bold(true)

	SelectedButtonStyle = buttonBase.
				Background(colorPrimary).
				Foreground(colorFg).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

func buttonStyle(kind keypad.Kind) lipgloss.Style {
	switch kind {
	case keypad.KindOperation:
		return OperationButtonStyle
	case keypad.KindClear:
		return ClearButtonStyle
	case keypad.KindEquals:
		return EqualsButtonStyle
	default:
		return NumberButtonStyle
	}
}
