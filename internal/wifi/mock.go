package wifi

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"wifi-finder.klederson.com/internal/signal"
)

var mockNetworkTemplates = []string{
	"HomeNetwork_2G",
	"XFINITY-7A3F",
	"TP-Link_5GHz",
	"AndroidAP",
	"Starlink_WiFi",
	"iPhone de Ana",
	"Galaxy SM-S918B",
	"Pixel 8 Pro",
	"Redmi Note 12",
	"CoffeeShop_Guest",
	"NETGEAR42",
	"Office-Corp",
	"",
	"",
}

var wifi5GChannels = []int{36, 40, 44, 48, 149, 153, 157, 161}

type mockNetwork struct {
	mac       string
	name      string
	baseRSSI  float64
	phase     float64
	amplitude float64
	active    bool
	freq      int
	channel   int
}

// MockSource generates fake access points for demo mode and tests.
type MockSource struct {
	mu       sync.Mutex
	rng      *rand.Rand
	networks []mockNetwork
	start    time.Time
	now      func() time.Time
}

// NewMockSource creates a deterministic mock for the given seed.
func NewMockSource(seed int64) *MockSource {
	rng := rand.New(rand.NewSource(seed))
	networks := make([]mockNetwork, len(mockNetworkTemplates))
	for i, name := range mockNetworkTemplates {
		n := mockNetwork{
			mac:       randomMAC(rng),
			name:      name,
			baseRSSI:  -45 - rng.Float64()*45, // -45 to -90 dBm
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 3 + rng.Float64()*12,
			active:    true,
		}
		if rng.Intn(2) == 0 {
			n.freq = 2412 + rng.Intn(11)*5
			n.channel = (n.freq - 2407) / 5
		} else {
			ch := wifi5GChannels[rng.Intn(len(wifi5GChannels))]
			n.channel = ch
			n.freq = 5000 + ch*5
		}
		networks[i] = n
	}
	return &MockSource{
		rng:      rng,
		networks: networks,
		start:    time.Now(),
		now:      time.Now,
	}
}

// Scan returns the mock batch at the current time. Active scans shuffle
// visibility a little more, the way a real rescan drops and finds radios.
func (m *MockSource) Scan(ctx context.Context, active bool) ([]signal.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	t := now.Sub(m.start).Seconds()
	toggle := 0.005
	if active {
		toggle = 0.05
	}

	samples := make([]signal.Sample, 0, len(m.networks))
	for i := range m.networks {
		n := &m.networks[i]
		if m.rng.Float64() < toggle {
			n.active = !n.active
		}
		if !n.active {
			continue
		}

		// Sinusoidal RSSI fluctuation + noise
		rssi := n.baseRSSI + n.amplitude*math.Sin(t*0.3+n.phase) + (m.rng.Float64()-0.5)*4

		samples = append(samples, signal.Sample{
			Identity:    n.mac,
			DisplayName: n.name,
			Strength:    int(math.Round(rssi)),
			ObservedAt:  now,
			Frequency:   n.freq,
			Channel:     n.channel,
		})
	}
	return samples, nil
}

// Identities returns the MAC addresses of every mock network.
func (m *MockSource) Identities() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.networks))
	for i, n := range m.networks {
		out[i] = n.mac
	}
	return out
}

func randomMAC(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
