package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wifi-finder.klederson.com/internal/config"
	"wifi-finder.klederson.com/internal/haptic"
	"wifi-finder.klederson.com/internal/logging"
	"wifi-finder.klederson.com/internal/metrics"
	"wifi-finder.klederson.com/internal/proximity"
	"wifi-finder.klederson.com/internal/signal"
	"wifi-finder.klederson.com/internal/ui"
	"wifi-finder.klederson.com/internal/wifi"
)

type viewMode int

const (
	viewList viewMode = iota
	viewTracker
)

func (v viewMode) String() string {
	if v == viewTracker {
		return "tracking"
	}
	return "networks"
}

// Options wires the model to its collaborators. Only Source is required;
// a nil Config means the defaults.
type Options struct {
	Source      wifi.Source
	Config      *config.Config
	Actuator    haptic.Actuator
	Metrics     *metrics.Recorder
	Logger      *slog.Logger
	TrackTarget string
	Now         func() time.Time
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	source     wifi.Source
	cache      *wifi.Cache
	classifier *signal.Classifier
	throttle   *signal.ScanThrottle
	engine     *proximity.Engine
	history    *RSSIRing
	actuator   haptic.Actuator
	metrics    *metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
	scanning   atomic.Bool
	// flagged identities already reported, so each one is logged once
	reported map[string]bool
}

// AppModel is the root Bubble Tea model for WiFi Finder.
type AppModel struct {
	width  int
	height int

	mode      viewMode
	cursor    int
	vibration bool

	status string
	warn   bool

	networks []signal.Sample
	reasons  map[string][]signal.Reason

	trackName string
	last      proximity.Update
	hasUpdate bool

	shared *shared
}

// New builds the model. With Options.TrackTarget set it starts in the
// tracker view.
func New(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("info", nil)
	}

	m := AppModel{
		vibration: cfg.Tracking.Vibration,
		status:    "Scanning for networks...",
		reasons:   map[string][]signal.Reason{},
		shared: &shared{
			source:     opts.Source,
			cache:      wifi.NewCache(),
			classifier: signal.NewClassifier(cfg.Rules),
			throttle:   signal.NewScanThrottle(cfg.Throttle.MaxScans, cfg.Throttle.Window),
			engine:     proximity.New(logger),
			history:    NewRSSIRing(config.HistoryLen),
			actuator:   opts.Actuator,
			metrics:    opts.Metrics,
			logger:     logger,
			now:        now,
			reported:   map[string]bool{},
		},
	}
	if opts.TrackTarget != "" {
		m.beginTracking(opts.TrackTarget, "")
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scanCmd(false), tickCmd()}
	if m.mode == viewTracker {
		if s, ok := m.shared.engine.Session(); ok {
			cmds = append(cmds, trackTickCmd(s.ID))
		}
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		var scan tea.Cmd
		if m.mode == viewList {
			scan = m.scanCmd(false)
		}
		return m, tea.Batch(scan, tickCmd())

	case TrackTickMsg:
		s, ok := m.shared.engine.Session()
		if m.mode != viewTracker || !ok || s.ID != msg.Session {
			return m, nil
		}
		return m, tea.Batch(m.scanCmd(false), trackTickCmd(s.ID))

	case ScanResultMsg:
		m.applyBatch(msg)
		return m, nil

	case ScanErrorMsg:
		m.shared.logger.Error("scan failed", "active", msg.Active, "error", msg.Err)
		if msg.Active {
			m.status = fmt.Sprintf("Scan failed: %v", msg.Err)
			m.warn = true
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.endTracking()
		return m, tea.Quit

	case "r", "R":
		return m.requestScan()
	}

	if m.mode == viewTracker {
		return m.handleTrackerKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.networks)-1 {
			m.cursor++
		}

	case "home":
		m.cursor = 0

	case "end":
		if len(m.networks) > 0 {
			m.cursor = len(m.networks) - 1
		}

	case "enter":
		if m.cursor < len(m.networks) {
			n := m.networks[m.cursor]
			if m.beginTracking(n.Identity, n.DisplayName) {
				s, _ := m.shared.engine.Session()
				return m, trackTickCmd(s.ID)
			}
		}
	}

	return m, nil
}

func (m AppModel) handleTrackerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "v", "V":
		enabled := !m.vibration
		if m.shared.engine.SetVibration(enabled) {
			m.cancelHaptics()
		}
		m.vibration = enabled
		if enabled {
			m.status = "Vibration on"
		} else {
			m.status = "Vibration off"
		}
		m.warn = false

	case "esc":
		m.endTracking()
		m.mode = viewList
		m.status = "Tracking stopped"
		m.warn = false
	}
	return m, nil
}

// requestScan asks the throttle for an active scan. A refused request keeps
// the cached results on screen; passive refresh is unaffected.
func (m AppModel) requestScan() (tea.Model, tea.Cmd) {
	sh := m.shared
	d := sh.throttle.TryAcquire(sh.now())
	if sh.metrics != nil {
		sh.metrics.ScanRequest(d.Allowed)
	}
	if !d.Allowed {
		wait := int(math.Ceil(d.Remaining.Seconds()))
		m.status = fmt.Sprintf("Scan throttled. Wait %ds. Auto-refresh continues.", wait)
		m.warn = true
		sh.logger.Warn("scan throttled", "remaining", d.Remaining.String())
		return m, nil
	}
	m.status = fmt.Sprintf("Scanning... (%d/%d)", sh.throttle.State().CountInWindow, sh.throttle.Limit())
	m.warn = false
	return m, m.scanCmd(true)
}

// beginTracking starts a new session on target. A stopped engine is
// replaced since stop is terminal.
func (m *AppModel) beginTracking(target, name string) bool {
	sh := m.shared
	if sh.engine.State() == proximity.StateStopped {
		sh.engine = proximity.New(sh.logger)
	}
	if _, err := sh.engine.Start(target, m.vibration); err != nil {
		m.status = fmt.Sprintf("Cannot track: %v", err)
		m.warn = true
		return false
	}
	sh.history.Reset()
	m.mode = viewTracker
	m.trackName = name
	m.hasUpdate = false
	m.last = proximity.Update{}
	m.status = "Tracking " + target
	m.warn = false
	if len(m.networks) > 0 {
		m.track(m.networks)
	}
	return true
}

func (m *AppModel) endTracking() {
	if m.shared.engine.Stop() {
		m.cancelHaptics()
	}
	m.shared.history.Reset()
	m.hasUpdate = false
}

func (m *AppModel) cancelHaptics() {
	if m.shared.actuator != nil {
		m.shared.actuator.Cancel()
	}
}

func (m *AppModel) applyBatch(msg ScanResultMsg) {
	sh := m.shared
	sh.cache.Replace(msg.Samples, msg.At)
	m.networks = sh.cache.Snapshot()

	flagged := sh.classifier.Classify(m.networks)
	m.reasons = make(map[string][]signal.Reason, flagged.Len())
	for _, n := range m.networks {
		key := signal.IdentityKey(n.Identity)
		if !flagged.Has(key) {
			continue
		}
		r := sh.classifier.Reasons(n)
		m.reasons[key] = r
		if !sh.reported[key] {
			sh.reported[key] = true
			sh.logger.Warn("suspicious network",
				"bssid", n.Identity,
				"ssid", n.NormalizedName(),
				"rssi", n.Strength,
				"reasons", r,
			)
		}
	}
	if sh.metrics != nil {
		sh.metrics.Batch(len(m.networks), flagged.Len())
	}

	if m.cursor >= len(m.networks) {
		m.cursor = max(0, len(m.networks)-1)
	}
	if msg.Active {
		m.status = fmt.Sprintf("Found %d networks", len(m.networks))
		m.warn = false
	}
	if m.mode == viewTracker {
		m.track(m.networks)
	}
}

func (m *AppModel) track(samples []signal.Sample) {
	sh := m.shared
	u, ok := sh.engine.Update(samples)
	if !ok {
		return
	}
	haptic.Apply(sh.actuator, u)
	if u.Found {
		sh.history.Push(u.Sample.Strength)
		if m.trackName == "" {
			m.trackName = u.Sample.DisplayName
		}
	}
	amp := 0
	if !u.Vibration.Suppress {
		amp = u.Vibration.Amplitude
	}
	if sh.metrics != nil {
		sh.metrics.TrackerUpdate(u.Found, amp)
	}
	m.last = u
	m.hasUpdate = true
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing WiFi Finder..."
	}

	bodyH := m.height - 2
	if bodyH < 5 {
		bodyH = 5
	}

	keys := ui.ListKeys
	if m.mode == viewTracker {
		keys = ui.TrackerKeys
	}
	menuBar := ui.RenderMenuBar(m.width, m.mode.String(), keys)

	var body string
	if m.mode == viewTracker {
		s, _ := m.shared.engine.Session()
		body = ui.RenderTracker(ui.TrackerView{
			Name:             m.trackName,
			Identity:         s.Target,
			Update:           m.last,
			HasUpdate:        m.hasUpdate,
			History:          m.shared.history.Values(),
			VibrationEnabled: m.vibration,
			Reasons:          m.reasons[signal.IdentityKey(s.Target)],
		}, m.width, bodyH)
	} else {
		body = ui.RenderNetworkList(m.networks, m.reasons, m.width, bodyH, m.cursor)
	}

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Networks:   len(m.networks),
		Suspicious: len(m.reasons),
		ScansUsed:  m.scansUsed(),
		ScanLimit:  m.shared.throttle.Limit(),
		Message:    m.status,
		Warn:       m.warn,
	})

	return ui.ComposeLayout(menuBar, body, statusBar)
}

func (m AppModel) scansUsed() int {
	t := m.shared.throttle
	st := t.State()
	if st.CountInWindow == 0 || m.shared.now().Sub(st.WindowStart) > t.Window() {
		return 0
	}
	return st.CountInWindow
}

// scanCmd runs one scan off the update loop. Passive scans are skipped
// while another scan is in flight.
func (m AppModel) scanCmd(active bool) tea.Cmd {
	sh := m.shared
	if sh.source == nil {
		return nil
	}
	if !sh.scanning.CompareAndSwap(false, true) && !active {
		return nil
	}
	return func() tea.Msg {
		defer sh.scanning.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), config.ScanTimeout)
		defer cancel()
		samples, err := sh.source.Scan(ctx, active)
		if err != nil {
			return ScanErrorMsg{Err: err, Active: active}
		}
		return ScanResultMsg{Samples: samples, Active: active, At: sh.now()}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(config.ListRefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func trackTickCmd(session string) tea.Cmd {
	return tea.Tick(config.TrackInterval, func(t time.Time) tea.Msg {
		return TrackTickMsg{Session: session, At: t}
	})
}
