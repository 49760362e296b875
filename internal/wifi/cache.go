package wifi

import (
	"sort"
	"sync"
	"time"

	"wifi-finder.klederson.com/internal/signal"
)

// Cache holds the last-known sample batch so the UI can keep rendering while
// active scans are throttled or failing. Only the latest batch is kept.
type Cache struct {
	mu        sync.RWMutex
	samples   map[string]signal.Sample
	updatedAt time.Time
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		samples: make(map[string]signal.Sample),
	}
}

// Replace swaps in a fresh batch. Malformed samples are dropped and
// duplicate identities keep the strongest reading.
func (c *Cache) Replace(batch []signal.Sample, at time.Time) {
	next := make(map[string]signal.Sample, len(batch))
	for _, s := range signal.Sanitize(batch) {
		key := signal.IdentityKey(s.Identity)
		if prev, ok := next[key]; ok && prev.Strength >= s.Strength {
			continue
		}
		next[key] = s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = next
	c.updatedAt = at
}

// Snapshot returns a sorted copy of all samples (strongest first).
func (c *Cache) Snapshot() []signal.Sample {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]signal.Sample, 0, len(c.samples))
	for _, s := range c.samples {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Strength != result[j].Strength {
			return result[i].Strength > result[j].Strength
		}
		return result[i].Identity < result[j].Identity
	})
	return result
}

// Lookup returns the cached sample for identity.
func (c *Cache) Lookup(identity string) (signal.Sample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.samples[signal.IdentityKey(identity)]
	return s, ok
}

// Len returns the number of cached access points.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}

// UpdatedAt returns when the current batch was stored.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
