package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface0 lipgloss.Color = "#313244"
)

// ---------------------------------------------------------------------------
// Semantic styles
// ---------------------------------------------------------------------------

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	hintStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	statusStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	cautionStyle = lipgloss.NewStyle().Foreground(colorPeach)
	infoStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorLavender)
	barFill      = lipgloss.NewStyle().Foreground(colorGreen)
	barOver      = lipgloss.NewStyle().Foreground(colorRed)
	barTrack     = lipgloss.NewStyle().Foreground(colorSurface0)
)
