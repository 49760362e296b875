package signal

import (
	"math"
	"time"

	"wifi-finder.klederson.com/internal/config"
)

// Waveform describes one haptic pulse: wait Delay, then vibrate for On.
type Waveform struct {
	Delay time.Duration
	On    time.Duration
}

// Vibration is a request for the actuation layer. When Suppress is set any
// ongoing vibration must be cancelled and Waveform is zero.
type Vibration struct {
	Amplitude int // [0, 255]
	Suppress  bool
	Waveform  Waveform
}

// Silent is the output used when the target is gone or haptics are off.
func Silent() Vibration {
	return Vibration{Suppress: true}
}

// MapVibration turns a strength into a vibration request. Strength is
// clamped to [VibrationMinRSSI, VibrationMaxRSSI] first.
func MapVibration(strength int) Vibration {
	clamped := clampInt(strength, config.VibrationMinRSSI, config.VibrationMaxRSSI)
	normalized := float64(clamped-config.VibrationMinRSSI) /
		float64(config.VibrationMaxRSSI-config.VibrationMinRSSI)
	amp := int(math.Round(normalized * config.VibrationMaxAmp))

	if amp <= config.VibrationDeadZone {
		return Vibration{Amplitude: amp, Suppress: true}
	}
	return Vibration{
		Amplitude: amp,
		Waveform:  Waveform{On: config.VibrationPulse},
	}
}

// Intensity returns the amplitude as a fraction in [0, 1].
func (v Vibration) Intensity() float64 {
	if v.Suppress {
		return 0
	}
	return float64(v.Amplitude) / config.VibrationMaxAmp
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
