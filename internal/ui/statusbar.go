package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo feeds the bottom status bar.
type StatusInfo struct {
	Networks   int
	Suspicious int
	ScansUsed  int
	ScanLimit  int
	Message    string
	Warn       bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	msgSty := StyleStatusOK
	if s.Warn {
		msgSty = StyleStatusWarn
	}
	msg := msgSty.Render(s.Message)

	info := fmt.Sprintf("  Networks: %d  Suspicious: %d  Scans: %d/%d",
		s.Networks, s.Suspicious, s.ScansUsed, s.ScanLimit)

	content := msg + StyleStatusBar.Foreground(ColorGreen).Render(info)
	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
