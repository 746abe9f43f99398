package family

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatbots-automated/zub-berciunai/internal/report"
)

// End-to-end runs of the recovery pipeline over the built-in families,
// exercising the same path the MCP tools and the CLI use.

func TestHerdRegisterPipeline(t *testing.T) {
	svc := report.NewService(nil, nil)

	text := `GALVIJŲ BANDOS REGISTRAS
1. Galvijas LT000123456 Ramunė karve Lietuvos juodmargiai 2019-04-07 64 Aktyvi
2. Galvijas LT000123457 Žibutė telycia Holšteinai 96/4 07.04.2020 40
Puslapis 1 iš 1
1. Galvijas LT000123456 Ramunė karve Lietuvos juodmargiai 2019-04-07 64 Aktyvi
`
	result, err := svc.ParseText(context.Background(), HerdRegister(), text, nil)
	require.NoError(t, err)

	// title and footer lines skip, the repeated animal deduplicates
	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Metadata.Duplicates)
	assert.Equal(t, 2, result.Metadata.SkippedRows)

	first := result.Records[0]
	assert.Equal(t, "LT000123456", first["Tag"])
	assert.Equal(t, "Galvijas", first["Species"])
	assert.Equal(t, "Karvė", first["Sex"])
	assert.Equal(t, "2019-04-07", first["BirthDate"])
	assert.Equal(t, 64.0, first["AgeMonths"])
	assert.Equal(t, "Aktyvi", first["Status"])

	second := result.Records[1]
	assert.Equal(t, "Telyčia", second["Sex"])
	assert.Equal(t, "2020-04-07", second["BirthDate"])
	assert.Nil(t, second["Status"])
}

func TestMilkProductionPipeline(t *testing.T) {
	svc := report.NewService(nil, nil)

	grid := report.Grid{
		{"Numeris", "Vardas", "Pienas", "Riebalai", "Baltymai", "Data"},
		{"LT000123456", "Ramunė", "14,5", "4,2", "3,4", "2020-03-15"},
		{"LT000123457", "Žibutė", "12,1", "4,0", "3,2", "2020-03-15"},
	}

	result, err := svc.ParseGrid(context.Background(), MilkProduction(), grid, nil)
	require.NoError(t, err)

	// six columns probe as the standard layout
	assert.Equal(t, "standard", result.Metadata.Variant)
	assert.Equal(t, report.SchemaFromHeader, result.Metadata.SchemaSource)

	require.Len(t, result.Records, 2)
	assert.Equal(t, 14.5, result.Records[0]["Pienas"])
	assert.Equal(t, "2020-03-15", result.Records[0]["Data"])
}

func TestMilkProductionExtendedLayout(t *testing.T) {
	svc := report.NewService(nil, nil)

	grid := report.Grid{
		{"LT000123456", "Ramunė", "14,5", "4,2", "3,4", "", "2020-03-15"},
	}

	result, err := svc.ParseGrid(context.Background(), MilkProduction(), grid, nil)
	require.NoError(t, err)

	assert.Equal(t, "extended", result.Metadata.Variant)
	require.Len(t, result.Records, 1)
	assert.Nil(t, result.Records[0]["Audit"])
	assert.Equal(t, "2020-03-15", result.Records[0]["Date"])
}

func TestDeliveriesPipeline(t *testing.T) {
	svc := report.NewService(nil, nil)

	text := `Pristatymų suvestinė 2020
1 DALIS pieno pristatymai
2020-03-15 8:30 LT000123456 pienas 610 00 Taip
netinkama eilutė
2 DALIS mėsos pristatymai
16.03.2020 LT000123457 420,5 ne
`
	result, err := svc.ParseText(context.Background(), Deliveries(), text, nil)
	require.NoError(t, err)

	require.Len(t, result.Metadata.Sections, 2)
	assert.Equal(t, 1, result.Metadata.SkippedRows)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "2020-03-15", first["Date"])
	assert.Equal(t, "08:30", first["Time"])
	assert.Equal(t, "Pienas", first["Product"])
	assert.Equal(t, 610.00, first["Quantity"])
	assert.Equal(t, true, first["Accepted"])

	second := result.Records[1]
	assert.Equal(t, "2020-03-16", second["Date"])
	assert.Nil(t, second["Time"])
	assert.Equal(t, false, second["Accepted"])
}

func TestDeliveriesMissingSecondPart(t *testing.T) {
	svc := report.NewService(nil, nil)

	text := `1 DALIS
2020-03-15 8:30 LT000123456 Pienas 610,5 Taip
`
	_, err := svc.ParseText(context.Background(), Deliveries(), text, nil)
	require.Error(t, err)
	assert.True(t, report.IsMissingMarker(err))
}
