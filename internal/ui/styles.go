package ui

import (
	"github.com/charmbracelet/lipgloss"

	"wifi-finder.klederson.com/internal/signal"
)

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorSuspicious   = lipgloss.Color("#FF5722")
)

// Quality band colors
var qualityColors = map[signal.Quality]lipgloss.Color{
	signal.QualityExcellent: lipgloss.Color("#4CAF50"),
	signal.QualityGood:      lipgloss.Color("#8BC34A"),
	signal.QualityFair:      lipgloss.Color("#FF9800"),
	signal.QualityWeak:      lipgloss.Color("#FF5722"),
	signal.QualityVeryWeak:  lipgloss.Color("#F44336"),
}

// QualityColor returns the display color for a band.
func QualityColor(q signal.Quality) lipgloss.Color {
	if c, ok := qualityColors[q]; ok {
		return c
	}
	return ColorDimGreen
}

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusOK = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleStatusWarn = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleNetworkName = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleNetworkMAC = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleSuspicious = lipgloss.NewStyle().
			Foreground(ColorSuspicious).
			Bold(true)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	// Cursor row style: black text on bright green = unmissable highlight
	StyleCursorRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(ColorMatrixGreen).
			Bold(true)
)
