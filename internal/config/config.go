package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// RSSI to distance estimation
	ReferenceRSSI = -40.0 // RSSI at 1 meter (dBm), typical for WiFi
	PathLossExp   = 2.5   // Path loss exponent (N), indoor default

	// Quality band lower bounds (exclusive)
	BandExcellent = -50
	BandGood      = -60
	BandFair      = -70
	BandWeak      = -80

	// Haptic feedback
	VibrationMinRSSI  = -90                    // clamped floor, maps to amplitude 0
	VibrationMaxRSSI  = -40                    // clamped ceiling, maps to amplitude 255
	VibrationMaxAmp   = 255                    // full motor amplitude
	VibrationDeadZone = 10                     // amplitudes at or below this are suppressed
	VibrationPulse    = 10 * time.Second       // single pulse, re-issued each tick
	TrackInterval     = 500 * time.Millisecond // tracker refresh cadence

	// Scanner
	ListRefreshInterval = 5 * time.Second  // passive list refresh
	ScanTimeout         = 15 * time.Second // nmcli/iw subprocess timeout
	DefaultMaxScans     = 4
	DefaultScanWindow   = 120 * time.Second

	// Tracker display
	HistoryLen = 60 // sparkline samples kept per tracking session

	// App
	AppName    = "WIFI-FINDER"
	AppVersion = "1.0"
)

// DefaultHotspotTokens is the vocabulary of SSID fragments typical of phone
// tethering and portable hotspots.
var DefaultHotspotTokens = []string{
	"android", "iphone", "hotspot", "mobile", "sm-", "pixel", "xiaomi",
	"huawei", "oneplus", "redmi", "oppo", "vivo", "realme",
}

// Config is the user-tunable configuration, optionally loaded from YAML.
type Config struct {
	LogLevel  string         `yaml:"log_level"`
	Interface string         `yaml:"interface"`
	Rules     SuspicionRules `yaml:"rules"`
	Throttle  ThrottleConfig `yaml:"throttle"`
	Tracking  TrackingConfig `yaml:"tracking"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// SuspicionRules is the rule table driving the suspicious-network heuristic.
// ProximityThreshold and HiddenThreshold are distinct on purpose.
type SuspicionRules struct {
	ProximityThreshold int      `yaml:"proximity_threshold"`
	HiddenThreshold    int      `yaml:"hidden_threshold"`
	HiddenName         string   `yaml:"hidden_name"`
	HotspotTokens      []string `yaml:"hotspot_tokens"`
}

type ThrottleConfig struct {
	MaxScans int           `yaml:"max_scans"`
	Window   time.Duration `yaml:"window"`
}

type TrackingConfig struct {
	Vibration bool `yaml:"vibration"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultRules returns the stock rule table.
func DefaultRules() SuspicionRules {
	tokens := make([]string, len(DefaultHotspotTokens))
	copy(tokens, DefaultHotspotTokens)
	return SuspicionRules{
		ProximityThreshold: BandExcellent,
		HiddenThreshold:    BandGood,
		HiddenName:         "<hidden>",
		HotspotTokens:      tokens,
	}
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Rules:    DefaultRules(),
		Throttle: ThrottleConfig{MaxScans: DefaultMaxScans, Window: DefaultScanWindow},
		Tracking: TrackingConfig{Vibration: true},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, errors.New("config file is empty")
	}
	// An explicit token list replaces the default one instead of merging.
	cfg.Rules.HotspotTokens = nil
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(cfg, content)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config, raw []byte) {
	if cfg.Rules.HotspotTokens == nil && !mentionsTokens(raw) {
		cfg.Rules.HotspotTokens = DefaultRules().HotspotTokens
	}
	if cfg.Rules.HiddenName == "" {
		cfg.Rules.HiddenName = "<hidden>"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	for i, tok := range cfg.Rules.HotspotTokens {
		cfg.Rules.HotspotTokens[i] = strings.ToLower(strings.TrimSpace(tok))
	}
}

// mentionsTokens reports whether the file sets hotspot_tokens at all, so an
// explicit empty list disables the pattern rule.
func mentionsTokens(raw []byte) bool {
	var probe struct {
		Rules map[string]any `yaml:"rules"`
	}
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe.Rules["hotspot_tokens"]
	return ok
}

func Validate(cfg *Config) error {
	if cfg.Throttle.MaxScans <= 0 {
		return errors.New("throttle.max_scans must be > 0")
	}
	if cfg.Throttle.Window <= 0 {
		return fmt.Errorf("throttle.window must be positive: %s", cfg.Throttle.Window)
	}
	if cfg.Rules.HiddenName == "" {
		return errors.New("rules.hidden_name required")
	}
	if !inDBmRange(cfg.Rules.ProximityThreshold) {
		return fmt.Errorf("rules.proximity_threshold out of range: %d", cfg.Rules.ProximityThreshold)
	}
	if !inDBmRange(cfg.Rules.HiddenThreshold) {
		return fmt.Errorf("rules.hidden_threshold out of range: %d", cfg.Rules.HiddenThreshold)
	}
	for _, tok := range cfg.Rules.HotspotTokens {
		if tok == "" {
			return errors.New("rules.hotspot_tokens contains an empty token")
		}
	}
	return nil
}

func inDBmRange(v int) bool {
	return v >= -120 && v <= 0
}
