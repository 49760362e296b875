package proximity

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wifi-finder.klederson.com/internal/signal"
)

// State is the tracking lifecycle of an Engine.
type State int

const (
	StateIdle State = iota
	StateTracking
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

var (
	ErrEmptyTarget     = errors.New("proximity: target identity is empty")
	ErrAlreadyTracking = errors.New("proximity: already tracking a target")
	ErrStopped         = errors.New("proximity: engine is stopped")
)

// Session describes one "track this access point" action.
type Session struct {
	ID               string
	Target           string
	VibrationEnabled bool
	StartedAt        time.Time
}

// Update is emitted for every refresh processed while tracking.
type Update struct {
	Found         bool
	Sample        signal.Sample
	Estimate      signal.Estimate
	Vibration     signal.Vibration
	CancelHaptics bool // any in-progress haptic output must stop
}

// DistanceText returns the tracker distance string, or "Out of range".
func (u Update) DistanceText() string {
	if !u.Found {
		return "Out of range"
	}
	return u.Estimate.Text()
}

// Engine follows a single target identity across sample batches.
// It is safe for concurrent use; mutations are serialized.
type Engine struct {
	mu      sync.Mutex
	state   State
	session Session
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an idle engine. A nil logger disables logging.
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger, now: time.Now}
}

// Start moves the engine from Idle to Tracking.
func (e *Engine) Start(target string, vibrationEnabled bool) (Session, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Session{}, ErrEmptyTarget
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateStopped:
		return Session{}, ErrStopped
	case StateTracking:
		return Session{}, ErrAlreadyTracking
	}

	e.session = Session{
		ID:               uuid.NewString(),
		Target:           target,
		VibrationEnabled: vibrationEnabled,
		StartedAt:        e.now(),
	}
	e.state = StateTracking
	if e.logger != nil {
		e.logger.Info("tracking started",
			"session", e.session.ID,
			"target", target,
			"vibration", vibrationEnabled,
		)
	}
	return e.session, nil
}

// Update processes one refresh. The second result is false when the engine
// is not tracking and nothing was emitted.
func (e *Engine) Update(samples []signal.Sample) (Update, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateTracking {
		return Update{}, false
	}

	s, ok := signal.Find(signal.Sanitize(samples), e.session.Target)
	if !ok {
		if e.logger != nil {
			e.logger.Debug("target not found", "session", e.session.ID, "target", e.session.Target)
		}
		return Update{Vibration: signal.Silent(), CancelHaptics: true}, true
	}

	u := Update{
		Found:     true,
		Sample:    s,
		Estimate:  signal.EstimateDistance(s.Strength),
		Vibration: signal.Silent(),
	}
	if e.session.VibrationEnabled {
		u.Vibration = signal.MapVibration(s.Strength)
	}
	u.CancelHaptics = u.Vibration.Suppress
	if e.logger != nil {
		e.logger.Debug("target update",
			"session", e.session.ID,
			"rssi", s.Strength,
			"distance_m", u.Estimate.DistanceMeters,
			"quality", u.Estimate.Quality.String(),
			"amplitude", u.Vibration.Amplitude,
		)
	}
	return u, true
}

// Stop ends tracking for good. It reports whether pending haptic output
// must be cancelled, which is only true on the Tracking to Stopped edge.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.state
	e.state = StateStopped
	if prev != StateTracking {
		return false
	}
	if e.logger != nil {
		e.logger.Info("tracking stopped",
			"session", e.session.ID,
			"target", e.session.Target,
			"duration", e.now().Sub(e.session.StartedAt).String(),
		)
	}
	return true
}

// SetVibration toggles haptics for the current session. It reports whether
// the caller must cancel ongoing haptic output.
func (e *Engine) SetVibration(enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateTracking {
		return false
	}
	was := e.session.VibrationEnabled
	e.session.VibrationEnabled = enabled
	return was && !enabled
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Session returns the current session, if one was started.
func (e *Engine) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, e.state != StateIdle
}
