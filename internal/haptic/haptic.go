package haptic

import (
	"io"
	"log/slog"
	"sync"

	"wifi-finder.klederson.com/internal/proximity"
	"wifi-finder.klederson.com/internal/signal"
)

// Actuator turns vibration requests into physical (or simulated) feedback.
// Overlapping Vibrate calls are resolved by the implementation.
type Actuator interface {
	Vibrate(v signal.Vibration)
	Cancel()
}

// Apply forwards one tracker update to act with exactly one call.
func Apply(act Actuator, u proximity.Update) {
	if act == nil {
		return
	}
	if u.CancelHaptics || u.Vibration.Suppress {
		act.Cancel()
		return
	}
	act.Vibrate(u.Vibration)
}

// Bell rings the terminal bell when intensity climbs into a stronger step,
// so the user hears the target getting closer.
type Bell struct {
	mu    sync.Mutex
	w     io.Writer
	steps int
	last  int
}

// NewBell creates a bell with the given number of intensity steps.
func NewBell(w io.Writer, steps int) *Bell {
	if steps < 1 {
		steps = 1
	}
	return &Bell{w: w, steps: steps}
}

func (b *Bell) Vibrate(v signal.Vibration) {
	step := int(v.Intensity() * float64(b.steps))
	b.mu.Lock()
	defer b.mu.Unlock()
	if step > b.last {
		_, _ = b.w.Write([]byte{'\a'})
	}
	b.last = step
}

func (b *Bell) Cancel() {
	b.mu.Lock()
	b.last = 0
	b.mu.Unlock()
}

// LogActuator records waveform requests.
type LogActuator struct {
	Logger *slog.Logger
}

func (l LogActuator) Vibrate(v signal.Vibration) {
	if l.Logger == nil {
		return
	}
	l.Logger.Debug("vibrate",
		"amplitude", v.Amplitude,
		"delay", v.Waveform.Delay.String(),
		"on", v.Waveform.On.String(),
	)
}

func (l LogActuator) Cancel() {
	if l.Logger != nil {
		l.Logger.Debug("vibration cancelled")
	}
}

// Multi fans requests out to several actuators.
type Multi []Actuator

func (m Multi) Vibrate(v signal.Vibration) {
	for _, a := range m {
		a.Vibrate(v)
	}
}

func (m Multi) Cancel() {
	for _, a := range m {
		a.Cancel()
	}
}
