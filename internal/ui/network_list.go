package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wifi-finder.klederson.com/internal/signal"
)

// RenderNetworkList renders the scrollable access point list with cursor
// and suspicious markers. reasons is keyed by signal.IdentityKey.
func RenderNetworkList(networks []signal.Sample, reasons map[string][]signal.Reason, width, height, cursor int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	suspicious := 0
	for _, n := range networks {
		if len(reasons[signal.IdentityKey(n.Identity)]) > 0 {
			suspicious++
		}
	}
	titleText := fmt.Sprintf("NETWORKS [%d]", len(networks))
	if suspicious > 0 {
		titleText += fmt.Sprintf(" (%d suspicious)", suspicious)
	}
	headerLines := []string{
		StylePanelTitle.Render(titleText),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	innerH := height - 2
	if innerH < len(headerLines)+1 {
		innerH = len(headerLines) + 1
	}
	space := innerH - len(headerLines)

	var lines []string
	if len(networks) == 0 {
		lines = append(lines, "", StyleHelp.Render(" No networks detected"), StyleHelp.Render(" Waiting for scan"))
	} else {
		linesPerEntry := 3 // 2 content + 1 blank
		maxVisible := space / linesPerEntry
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Compute viewport start so cursor is always visible
		viewStart := 0
		if cursor >= maxVisible {
			viewStart = cursor - maxVisible + 1
		}
		for i := viewStart; i < len(networks) && len(lines) < space; i++ {
			n := networks[i]
			entry := renderNetworkEntry(n, reasons[signal.IdentityKey(n.Identity)], innerW, i == cursor)
			for _, l := range entry {
				if len(lines) >= space {
					break
				}
				lines = append(lines, l)
			}
		}
	}
	for len(lines) < space {
		lines = append(lines, "")
	}

	all := append(headerLines, lines...)
	if len(all) > innerH {
		all = all[:innerH]
	}
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
	return clampLines(rendered, height)
}

func renderNetworkEntry(n signal.Sample, reasons []signal.Reason, maxW int, isCursor bool) []string {
	name := n.NormalizedName()
	nameMax := maxW - 20
	if nameMax < 4 {
		nameMax = 4
	}
	if len(name) > nameMax {
		name = name[:nameMax]
	}

	marker := " "
	if len(reasons) > 0 {
		marker = "!"
	}
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	q := signal.QualityFor(n.Strength)
	rssi := fmt.Sprintf("%4ddBm", n.Strength)
	band := ""
	if n.Band() != "" {
		band = fmt.Sprintf("  %s ch%d", n.Band(), n.Channel)
	}
	tag := ""
	if len(reasons) > 0 {
		tag = " SUSPICIOUS " + joinReasons(reasons)
	}

	raw1 := fmt.Sprintf("%s %s %s", cursor, marker, name)
	raw2 := fmt.Sprintf("     %s  %s%s%s", n.Identity, rssi, band, tag)

	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(raw1, maxW)),
			StyleCursorRow.Render(truncRaw(raw2, maxW)),
			"",
		}
	}

	markerSty := StyleHelp
	if len(reasons) > 0 {
		markerSty = StyleSuspicious
	}
	rssiSty := lipgloss.NewStyle().Foreground(QualityColor(q))
	line1 := fmt.Sprintf("   %s %s", markerSty.Render(marker), StyleNetworkName.Render(name))
	line2 := fmt.Sprintf("     %s  %s%s", StyleNetworkMAC.Render(n.Identity), rssiSty.Render(rssi), StyleHelp.Render(band))
	if tag != "" {
		line2 += StyleSuspicious.Render(tag)
	}
	return []string{line1, line2, ""}
}

func joinReasons(reasons []signal.Reason) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}

// clampLines forces rendered output to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(rendered string, height int) string {
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
