package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wifi-finder.klederson.com/internal/config"
)

func newTestClassifier() *Classifier {
	return NewClassifier(config.DefaultRules())
}

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   []string
	}{
		{"pattern despite moderate signal", Sample{Identity: "AA", DisplayName: "Pixel 7", Strength: -65}, []string{"AA"}},
		{"proximity", Sample{Identity: "BB", DisplayName: "HomeNet", Strength: -45}, []string{"BB"}},
		{"nothing fires", Sample{Identity: "CC", DisplayName: "HomeNet", Strength: -70}, []string{}},
		{"hidden and close", Sample{Identity: "DD", DisplayName: "", Strength: -55}, []string{"DD"}},
		{"hidden at threshold", Sample{Identity: "DD", DisplayName: "", Strength: -60}, []string{}},
		{"hidden just above threshold", Sample{Identity: "DD", DisplayName: "", Strength: -59}, []string{"DD"}},
		{"proximity boundary", Sample{Identity: "EE", DisplayName: "HomeNet", Strength: -50}, []string{}},
		{"substring not whole word", Sample{Identity: "FF", DisplayName: "MyANDROIDAP", Strength: -90}, []string{"FF"}},
		{"samsung model prefix", Sample{Identity: "GG", DisplayName: "Galaxy SM-G991B", Strength: -85}, []string{"GG"}},
		{"lowercase identity canonicalized", Sample{Identity: "aa:bb", DisplayName: "iPhone", Strength: -70}, []string{"AA:BB"}},
	}
	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify([]Sample{tt.sample})
			assert.Equal(t, tt.want, got.Identities())
		})
	}
}

func TestClassifyReasonsIndependent(t *testing.T) {
	c := newTestClassifier()
	reasons := c.Reasons(Sample{Identity: "X", DisplayName: "", Strength: -45})
	assert.Equal(t, []Reason{ReasonProximity, ReasonHiddenClose}, reasons)

	reasons = c.Reasons(Sample{Identity: "X", DisplayName: "Redmi Note hotspot", Strength: -40})
	assert.Equal(t, []Reason{ReasonProximity, ReasonHotspotName}, reasons)

	assert.Empty(t, c.Reasons(Sample{Identity: "X", DisplayName: "Office", Strength: -75}))
}

func TestClassifyDropsMalformed(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify([]Sample{
		{Identity: "", DisplayName: "iPhone", Strength: -30},
		{Identity: "  ", DisplayName: "hotspot", Strength: -30},
		{Identity: "OK", DisplayName: "hotspot", Strength: -80},
	})
	assert.Equal(t, []string{"OK"}, got.Identities())
}

func TestClassifyIdempotentAndOrderIndependent(t *testing.T) {
	c := newTestClassifier()
	batch := []Sample{
		{Identity: "01", DisplayName: "Xiaomi 13", Strength: -80},
		{Identity: "02", DisplayName: "Cafe", Strength: -72},
		{Identity: "03", DisplayName: "Cafe", Strength: -48},
		{Identity: "04", DisplayName: "", Strength: -58},
	}
	first := c.Classify(batch)
	assert.Equal(t, first, c.Classify(batch))

	reversed := []Sample{batch[3], batch[2], batch[1], batch[0]}
	assert.Equal(t, first, c.Classify(reversed))
	assert.Equal(t, []string{"01", "03", "04"}, first.Identities())
	assert.True(t, first.Has("03"))
	assert.False(t, first.Has("02"))
}

func TestClassifyEmptyBatch(t *testing.T) {
	c := newTestClassifier()
	assert.Equal(t, 0, c.Classify(nil).Len())
}

func TestClassifyCustomRuleTable(t *testing.T) {
	c := NewClassifier(config.SuspicionRules{
		ProximityThreshold: -30,
		HiddenThreshold:    -40,
		HiddenName:         "[none]",
		HotspotTokens:      []string{"Tether"},
	})
	got := c.Classify([]Sample{
		{Identity: "A", DisplayName: "Pixel 7", Strength: -45},
		{Identity: "B", DisplayName: "my-tether", Strength: -90},
		{Identity: "C", DisplayName: "", Strength: -35},
		{Identity: "D", DisplayName: "", Strength: -45},
	})
	assert.Equal(t, []string{"B", "C"}, got.Identities())
}
