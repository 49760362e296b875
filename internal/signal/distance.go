package signal

import (
	"fmt"
	"math"

	"wifi-finder.klederson.com/internal/config"
)

// Quality is a discrete signal quality band, ordered best first.
type Quality int

const (
	QualityExcellent Quality = iota
	QualityGood
	QualityFair
	QualityWeak
	QualityVeryWeak
)

func (q Quality) String() string {
	switch q {
	case QualityExcellent:
		return "excellent"
	case QualityGood:
		return "good"
	case QualityFair:
		return "fair"
	case QualityWeak:
		return "weak"
	default:
		return "veryWeak"
	}
}

// Label returns the human readable description shown on the tracker.
func (q Quality) Label() string {
	switch q {
	case QualityExcellent:
		return "Excellent - Very Close!"
	case QualityGood:
		return "Good - Close"
	case QualityFair:
		return "Fair - Medium Distance"
	case QualityWeak:
		return "Weak - Far"
	default:
		return "Very Weak - Very Far"
	}
}

// QualityFor buckets a signal strength. Each band excludes its lower bound.
func QualityFor(strength int) Quality {
	switch {
	case strength > config.BandExcellent:
		return QualityExcellent
	case strength > config.BandGood:
		return QualityGood
	case strength > config.BandFair:
		return QualityFair
	case strength > config.BandWeak:
		return QualityWeak
	default:
		return QualityVeryWeak
	}
}

// Estimate is the distance/quality pair derived from one sample.
type Estimate struct {
	DistanceMeters float64
	Quality        Quality
}

// Text returns the authoritative distance string.
func (e Estimate) Text() string {
	return FormatDistance(e.DistanceMeters)
}

// EstimateDistance converts a strength to an approximate distance and band.
// The log-distance model is a rough indoor approximation, not a measurement.
func EstimateDistance(strength int) Estimate {
	return Estimate{
		DistanceMeters: RSSIToDistance(float64(strength), config.ReferenceRSSI, config.PathLossExp),
		Quality:        QualityFor(strength),
	}
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((referenceRSSI - rssi) / (10 * n))
func RSSIToDistance(rssi, referenceRSSI, pathLossExp float64) float64 {
	return math.Pow(10, (referenceRSSI-rssi)/(10*pathLossExp))
}

// FormatDistance renders meters the way the tracker shows them.
func FormatDistance(meters float64) string {
	switch {
	case meters < 1:
		return "less than 1 meter"
	case meters < 10:
		return fmt.Sprintf("~%.1f meters", meters)
	default:
		return fmt.Sprintf("~%.0f meters", math.Round(meters))
	}
}
