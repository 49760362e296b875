package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNmcli(t *testing.T) {
	out := `AA\:BB\:CC\:DD\:EE\:01:HomeNet:2437 MHz:6:80
aa\:bb\:cc\:dd\:ee\:02::5180 MHz:36:95
AA\:BB\:CC\:DD\:EE\:03:Cafe\: Guest:2412 MHz:1:bad

not-a-line
ZZ\:BB\:CC\:DD\:EE\:04:Broken:2412 MHz:1:50
`
	samples := ParseNmcli(out)
	require.Len(t, samples, 3)

	assert.Equal(t, "AA:BB:CC:DD:EE:01", samples[0].Identity)
	assert.Equal(t, "HomeNet", samples[0].DisplayName)
	assert.Equal(t, -44, samples[0].Strength)
	assert.Equal(t, 2437, samples[0].Frequency)
	assert.Equal(t, 6, samples[0].Channel)

	assert.Equal(t, "AA:BB:CC:DD:EE:02", samples[1].Identity)
	assert.Equal(t, "", samples[1].DisplayName)
	assert.Equal(t, "<hidden>", samples[1].NormalizedName())
	assert.Equal(t, -34, samples[1].Strength)

	assert.Equal(t, "Cafe: Guest", samples[2].DisplayName)
	assert.Equal(t, -80, samples[2].Strength, "unparseable signal falls back to -80")
}

func TestPercentToDBm(t *testing.T) {
	assert.Equal(t, -100, PercentToDBm(0))
	assert.Equal(t, -30, PercentToDBm(100))
	assert.Equal(t, -65, PercentToDBm(50))
	assert.Equal(t, -100, PercentToDBm(-5))
	assert.Equal(t, -30, PercentToDBm(140))
}

func TestParseIW(t *testing.T) {
	out := `BSS aa:bb:cc:dd:ee:01(on wlp2s0)
	freq: 2437.0
	signal: -52.00 dBm
	SSID: HomeNet
	DS Parameter set: channel 6
BSS aa:bb:cc:dd:ee:02(on wlp2s0) -- associated
	freq: 5180
	signal: -71.00 dBm
	SSID: 
	HT operation:
		 * primary channel: 36
BSS garbage
	signal: -10.00 dBm
`
	samples := ParseIW(out)
	require.Len(t, samples, 2)

	assert.Equal(t, "AA:BB:CC:DD:EE:01", samples[0].Identity)
	assert.Equal(t, "HomeNet", samples[0].DisplayName)
	assert.Equal(t, -52, samples[0].Strength)
	assert.Equal(t, 2437, samples[0].Frequency)
	assert.Equal(t, 6, samples[0].Channel)

	assert.Equal(t, "AA:BB:CC:DD:EE:02", samples[1].Identity)
	assert.Equal(t, -71, samples[1].Strength)
	assert.Equal(t, 5180, samples[1].Frequency)
	assert.Equal(t, 36, samples[1].Channel)
}

func TestIsValidMAC(t *testing.T) {
	assert.True(t, isValidMAC("AA:BB:CC:DD:EE:FF"))
	assert.True(t, isValidMAC("aa:bb:cc:dd:ee:ff"))
	assert.False(t, isValidMAC("AA:BB:CC:DD:EE"))
	assert.False(t, isValidMAC("AA-BB-CC-DD-EE-FF"))
	assert.False(t, isValidMAC("GG:BB:CC:DD:EE:FF"))
}
