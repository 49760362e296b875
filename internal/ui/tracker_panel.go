package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wifi-finder.klederson.com/internal/proximity"
	"wifi-finder.klederson.com/internal/signal"
)

// TrackerView is everything the tracker panel shows for one session.
type TrackerView struct {
	Name             string
	Identity         string
	Update           proximity.Update
	HasUpdate        bool
	History          []float64
	VibrationEnabled bool
	Reasons          []signal.Reason
}

// RenderTracker renders the tracking panel for a single access point.
func RenderTracker(v TrackerView, width, height int) string {
	innerW := width - 4
	if innerW < 24 {
		innerW = 24
	}

	title := StylePanelTitle.Render("TRACKING")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint
	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	name := v.Name
	if name == "" {
		name = signal.HiddenName
	}

	rssi, distance, quality := "--", "Waiting for signal...", ""
	qColor := ColorDimGreen
	if v.HasUpdate {
		distance = v.Update.DistanceText()
		if v.Update.Found {
			rssi = fmt.Sprintf("%d dBm", v.Update.Sample.Strength)
			quality = v.Update.Estimate.Quality.Label()
			qColor = QualityColor(v.Update.Estimate.Quality)
		} else {
			quality = "No Signal"
			qColor = QualityColor(signal.QualityVeryWeak)
		}
	}

	vib := "off"
	if v.VibrationEnabled {
		vib = "on"
	}

	fields := []struct{ label, value string }{
		{"Name", name},
		{"BSSID", v.Identity},
		{"RSSI", rssi},
		{"Distance", distance},
		{"Vibration", vib},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+StyleValue.Render(f.value))
	}
	qualitySty := lipgloss.NewStyle().Foreground(qColor).Bold(true)
	lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", "Quality"))+qualitySty.Render(quality))
	if len(v.Reasons) > 0 {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", "Flags"))+StyleSuspicious.Render(joinReasons(v.Reasons)))
	}
	lines = append(lines, "")

	barWidth := innerW - 22
	if barWidth < 10 {
		barWidth = 10
	}
	strength := -100
	if v.HasUpdate && v.Update.Found {
		strength = v.Update.Sample.Strength
	}
	lines = append(lines, StyleLabel.Render("  Signal    ")+renderSignalBar(strength, barWidth))

	intensity := 0.0
	amp := 0
	if v.HasUpdate {
		intensity = v.Update.Vibration.Intensity()
		if !v.Update.Vibration.Suppress {
			amp = v.Update.Vibration.Amplitude
		}
	}
	lines = append(lines, StyleLabel.Render("  Haptic    ")+renderMeter(intensity, barWidth)+StyleValue.Render(fmt.Sprintf(" %3d", amp)))
	lines = append(lines, "")

	if len(v.History) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, StyleLabel.Render("  RSSI History:"))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(renderSparkline(v.History, sparkW)))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func renderSignalBar(rssi int, width int) string {
	// Map RSSI -100..-30 to 0..width filled bars
	ratio := (float64(rssi) + 100.0) / 70.0
	color := QualityColor(signal.QualityFor(rssi))
	return renderBar(ratio, width, color)
}

func renderMeter(intensity float64, width int) string {
	return renderBar(intensity, width, ColorWarning)
}

func renderBar(ratio float64, width int, color lipgloss.Color) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))

	filledPart := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := int((values[i] - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
