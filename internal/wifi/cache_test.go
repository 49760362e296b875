package wifi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wifi-finder.klederson.com/internal/signal"
)

func TestCacheReplaceAndSnapshot(t *testing.T) {
	c := NewCache()
	at := time.Unix(1_700_000_000, 0)
	c.Replace([]signal.Sample{
		{Identity: "AA:01", Strength: -70},
		{Identity: "", Strength: -20},
		{Identity: "AA:02", Strength: -40},
		{Identity: "aa:01", Strength: -60},
		{Identity: "AA:03", Strength: -40},
	}, at)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, at, c.UpdatedAt())

	snap := c.Snapshot()
	ids := make([]string, len(snap))
	for i, s := range snap {
		ids[i] = s.Identity
	}
	assert.Equal(t, []string{"AA:02", "AA:03", "aa:01"}, ids)

	s, ok := c.Lookup("aa:01")
	assert.True(t, ok)
	assert.Equal(t, -60, s.Strength)
}

func TestCacheReplaceDropsPreviousBatch(t *testing.T) {
	c := NewCache()
	c.Replace([]signal.Sample{{Identity: "AA:01", Strength: -70}}, time.Now())
	c.Replace([]signal.Sample{{Identity: "AA:02", Strength: -50}}, time.Now())

	_, ok := c.Lookup("AA:01")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCacheSnapshotIsCopy(t *testing.T) {
	c := NewCache()
	c.Replace([]signal.Sample{{Identity: "AA:01", Strength: -70}}, time.Now())
	snap := c.Snapshot()
	snap[0].Strength = 0

	s, _ := c.Lookup("AA:01")
	assert.Equal(t, -70, s.Strength)
}
