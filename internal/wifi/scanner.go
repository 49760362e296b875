package wifi

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"wifi-finder.klederson.com/internal/config"
	"wifi-finder.klederson.com/internal/signal"
)

// Scanner reads nearby access points from the OS.
// Prefers nmcli (no root needed), falls back to iw (needs root).
type Scanner struct {
	iface    string
	useNmcli bool
	timeout  time.Duration
	now      func() time.Time
}

// NewScanner creates a scanner. If iface is empty, auto-detects.
func NewScanner(iface string) *Scanner {
	useNmcli := nmcliAvailable()
	if iface == "" && !useNmcli {
		iface = detectWiFiInterface()
	}
	return &Scanner{
		iface:    iface,
		useNmcli: useNmcli,
		timeout:  config.ScanTimeout,
		now:      time.Now,
	}
}

// Scan returns the current sample batch.
func (s *Scanner) Scan(ctx context.Context, active bool) ([]signal.Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		out string
		err error
	)
	if s.useNmcli {
		out, err = s.runNmcli(ctx, active)
	} else {
		out, err = s.runIW(ctx, active)
	}
	if err != nil {
		return nil, err
	}

	var samples []signal.Sample
	if s.useNmcli {
		samples = ParseNmcli(out)
	} else {
		samples = ParseIW(out)
	}
	ts := s.now()
	for i := range samples {
		samples[i].ObservedAt = ts
	}
	return samples, nil
}

func (s *Scanner) runNmcli(ctx context.Context, active bool) (string, error) {
	if active {
		// A refused rescan still leaves NetworkManager's cache readable.
		_ = exec.CommandContext(ctx, "nmcli", "dev", "wifi", "rescan").Run()
	}
	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "BSSID,SSID,FREQ,CHAN,SIGNAL", "dev", "wifi", "list", "--rescan", "no")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("nmcli list: %w", err)
	}
	return string(out), nil
}

func (s *Scanner) runIW(ctx context.Context, active bool) (string, error) {
	args := []string{"dev", s.iface, "scan"}
	if !active {
		args = append(args, "dump")
	}
	out, err := exec.CommandContext(ctx, "iw", args...).Output()
	if err != nil {
		return "", fmt.Errorf("iw %s: %w (try running with sudo)", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// ParseNmcli parses nmcli terse output.
// Format per line: BSSID:SSID:FREQ:CHAN:SIGNAL
// In terse mode, literal colons in values are escaped as \:
func ParseNmcli(output string) []signal.Sample {
	var results []signal.Sample

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		const placeholder = "\x00"
		escaped := strings.ReplaceAll(line, `\:`, placeholder)
		parts := strings.Split(escaped, ":")
		for i := range parts {
			parts[i] = strings.ReplaceAll(parts[i], placeholder, ":")
		}
		if len(parts) < 5 {
			continue
		}

		mac := strings.ToUpper(strings.TrimSpace(parts[0]))
		if !isValidMAC(mac) {
			continue
		}

		freq, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[2]), " MHz"))
		channel, _ := strconv.Atoi(strings.TrimSpace(parts[3]))

		rssi := -80
		if pct, err := strconv.Atoi(strings.TrimSpace(parts[4])); err == nil {
			rssi = PercentToDBm(pct)
		}

		results = append(results, signal.Sample{
			Identity:    mac,
			DisplayName: parts[1],
			Strength:    rssi,
			Frequency:   freq,
			Channel:     channel,
		})
	}
	return results
}

// PercentToDBm maps nmcli SIGNAL (0-100%) onto approximate dBm.
// 100% ~ -30dBm, 0% ~ -100dBm
func PercentToDBm(pct int) int {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return -100 + pct*70/100
}

// ParseIW parses the output of `iw dev <iface> scan`.
func ParseIW(output string) []signal.Sample {
	var results []signal.Sample

	scanner := bufio.NewScanner(strings.NewReader(output))

	var current *signal.Sample
	for scanner.Scan() {
		line := scanner.Text()

		// New BSS block: "BSS aa:bb:cc:dd:ee:ff(on wlan0)"
		if strings.HasPrefix(line, "BSS ") {
			if current != nil && isValidMAC(current.Identity) {
				results = append(results, *current)
			}
			mac := strings.TrimPrefix(line, "BSS ")
			if idx := strings.IndexByte(mac, '('); idx >= 0 {
				mac = mac[:idx]
			}
			current = &signal.Sample{
				Identity: strings.ToUpper(strings.TrimSpace(mac)),
				Strength: -80,
			}
			continue
		}
		if current == nil {
			continue
		}

		trimmed := strings.TrimPrefix(strings.TrimSpace(line), "* ")
		switch {
		case strings.HasPrefix(trimmed, "SSID: "):
			current.DisplayName = strings.TrimPrefix(trimmed, "SSID: ")
		case strings.HasPrefix(trimmed, "freq: "):
			if v, err := strconv.ParseFloat(strings.TrimPrefix(trimmed, "freq: "), 64); err == nil {
				current.Frequency = int(v)
			}
		case strings.HasPrefix(trimmed, "signal: "):
			sigStr := strings.TrimSuffix(strings.TrimPrefix(trimmed, "signal: "), " dBm")
			if v, err := strconv.ParseFloat(strings.TrimSpace(sigStr), 64); err == nil {
				current.Strength = int(v)
			}
		case strings.HasPrefix(trimmed, "DS Parameter set: channel "):
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "DS Parameter set: channel ")); err == nil {
				current.Channel = v
			}
		case strings.HasPrefix(trimmed, "primary channel: ") && current.Channel == 0:
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "primary channel: ")); err == nil {
				current.Channel = v
			}
		}
	}

	if current != nil && isValidMAC(current.Identity) {
		results = append(results, *current)
	}
	return results
}

// isValidMAC checks for the AA:BB:CC:DD:EE:FF form.
func isValidMAC(mac string) bool {
	if len(mac) != 17 {
		return false
	}
	for i, c := range mac {
		if i%3 == 2 {
			if c != ':' {
				return false
			}
			continue
		}
		if !strings.ContainsRune("0123456789ABCDEFabcdef", c) {
			return false
		}
	}
	return true
}

// ScannerAvailable checks if nmcli or iw is available on the system.
func ScannerAvailable() bool {
	return nmcliAvailable() || iwAvailable()
}

func nmcliAvailable() bool {
	_, err := exec.LookPath("nmcli")
	return err == nil
}

func iwAvailable() bool {
	_, err := exec.LookPath("iw")
	return err == nil
}

// detectWiFiInterface finds the first wireless interface via `iw dev`.
func detectWiFiInterface() string {
	out, err := exec.Command("iw", "dev").Output()
	if err != nil {
		return "wlan0"
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Interface ") {
			return strings.TrimPrefix(line, "Interface ")
		}
	}
	return "wlan0"
}
