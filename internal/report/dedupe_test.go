package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicate(t *testing.T) {
	records := []Record{
		{"Tag": "LT000123", "Name": "Ramunė"},
		{"Tag": "LT000124", "Name": "Žibutė"},
		{"Tag": "LT000123", "Name": "Ramunė"},
	}

	out, dropped := Deduplicate(records, "Tag")
	assert.Equal(t, 1, dropped)
	assert.Len(t, out, 2)
	// first occurrence wins, encounter order preserved
	assert.Equal(t, "LT000123", out[0]["Tag"])
	assert.Equal(t, "LT000124", out[1]["Tag"])
}

func TestDeduplicateNilIdentity(t *testing.T) {
	records := []Record{
		{"Tag": nil, "Name": "be numerio"},
		{"Tag": "LT000123", "Name": "Ramunė"},
	}

	out, dropped := Deduplicate(records, "Tag")
	assert.Equal(t, 1, dropped)
	assert.Len(t, out, 1)
	assert.Equal(t, "LT000123", out[0]["Tag"])
}

func TestDeduplicateNoIdentityField(t *testing.T) {
	records := []Record{{"A": 1}, {"A": 1}}

	out, dropped := Deduplicate(records, "")
	assert.Zero(t, dropped)
	assert.Len(t, out, 2)
}
