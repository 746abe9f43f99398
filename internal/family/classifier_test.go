package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHerdRegister(t *testing.T) {
	c := NewClassifier()

	text := `GALVIJŲ BANDOS REGISTRAS
Nr Rūšis Numeris Vardas Lytis Veislė Gimimo data
1. Galvijas LT000123456 Ramunė Karvė Holšteinai 2019-04-07 64`

	best, ok := c.Best(text)
	require.True(t, ok)
	assert.Equal(t, "herd-register", best.Family)
	assert.NotEmpty(t, best.Keywords)
}

func TestDetectDiacriticInsensitive(t *testing.T) {
	c := NewClassifier()

	// scanned exports often lose accents; detection still scores
	best, ok := c.Best("galviju bandos registras, veisle, gimimo data, lytis")
	require.True(t, ok)
	assert.Equal(t, "herd-register", best.Family)
}

func TestDetectDeliveriesByMarkers(t *testing.T) {
	c := NewClassifier()

	text := `Pristatymų suvestinė
1 DALIS
2020-03-15 8:30 LT000123456 Pienas 610,5 Taip
2 DALIS`

	best, ok := c.Best(text)
	require.True(t, ok)
	assert.Equal(t, "deliveries", best.Family)
	assert.Equal(t, 2, best.MarkersHit)
}

func TestDetectNothing(t *testing.T) {
	c := NewClassifier()

	results := c.Detect("lorem ipsum dolor sit amet")
	assert.Empty(t, results)

	_, ok := c.Best("lorem ipsum dolor sit amet")
	assert.False(t, ok)
}

func TestDetectOrdering(t *testing.T) {
	c := NewClassifier()

	results := c.Detect("bandos registras galvijai, priimta")
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "herd-register", results[0].Family)
}
