package app

import (
	"time"

	"wifi-finder.klederson.com/internal/signal"
)

// TickMsg triggers the passive list refresh.
type TickMsg time.Time

// TrackTickMsg drives the tracker refresh for one session. Ticks whose
// session no longer matches are dropped.
type TrackTickMsg struct {
	Session string
	At      time.Time
}

// ScanResultMsg carries one batch from the Wi-Fi source.
type ScanResultMsg struct {
	Samples []signal.Sample
	Active  bool
	At      time.Time
}

// ScanErrorMsg reports scanner errors.
type ScanErrorMsg struct {
	Err    error
	Active bool
}
