package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wifi-finder.klederson.com/internal/config"
)

// Key is a menu bar shortcut.
type Key struct {
	Key, Label string
}

var (
	ListKeys    = []Key{{"Enter", "track"}, {"R", "escan"}, {"Q", "uit"}}
	TrackerKeys = []Key{{"V", "ibration"}, {"R", "efresh"}, {"Esc", "back"}, {"Q", "uit"}}
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, mode string, keys []Key) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.Key+"]") + StyleMenuLabel.Render(k.Label)
	}

	left := StyleMenuKey.Render(title) + menu
	right := StyleStatusOK.Render(strings.ToUpper(mode)) + " "

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
