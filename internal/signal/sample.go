package signal

import (
	"strings"
	"time"
)

// HiddenName is the placeholder used for networks that broadcast no SSID.
const HiddenName = "<hidden>"

// Sample is one observed access point at one point in time.
type Sample struct {
	Identity    string // BSSID, compared case-insensitively
	DisplayName string // SSID, empty for hidden networks
	Strength    int    // dBm
	ObservedAt  time.Time

	Frequency int // MHz, zero when unknown
	Channel   int
}

// NormalizedName returns the display name, or HiddenName if empty.
func (s Sample) NormalizedName() string {
	if s.DisplayName == "" {
		return HiddenName
	}
	return s.DisplayName
}

// Band returns the frequency band label ("2.4G", "5G", "6G" or "").
func (s Sample) Band() string {
	switch {
	case s.Frequency >= 5925:
		return "6G"
	case s.Frequency >= 5000:
		return "5G"
	case s.Frequency >= 2400:
		return "2.4G"
	}
	return ""
}

// IdentityKey canonicalizes an identity for use as a map key.
func IdentityKey(identity string) string {
	return strings.ToUpper(strings.TrimSpace(identity))
}

// SameIdentity reports whether two identities name the same radio.
func SameIdentity(a, b string) bool {
	return IdentityKey(a) == IdentityKey(b)
}

// Sanitize drops samples without a usable identity. The input is not modified.
func Sanitize(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if IdentityKey(s.Identity) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Find returns the first sample whose identity matches target.
func Find(samples []Sample, target string) (Sample, bool) {
	if IdentityKey(target) == "" {
		return Sample{}, false
	}
	for _, s := range samples {
		if SameIdentity(s.Identity, target) {
			return s, true
		}
	}
	return Sample{}, false
}
