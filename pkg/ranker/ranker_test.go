package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younsl/spotbid/internal/models"
)

func sample(instanceType, zone string, price float64) models.PriceSample {
	return models.PriceSample{InstanceType: instanceType, Zone: zone, Price: price}
}

func TestRankTruncatesAverageNotRounds(t *testing.T) {
	// Mean is 0.12349: rounding would give 0.1235, truncation 0.1234.
	offers, err := Rank([]models.PriceSample{
		sample("m5.large", "us-east-1a", 0.12348),
		sample("m5.large", "us-east-1a", 0.12350),
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.InDelta(t, 0.1234, offers[0].Price, 1e-9)
}

func TestRankPicksCheapestZone(t *testing.T) {
	offers, err := Rank([]models.PriceSample{
		sample("m5.large", "us-east-1a", 0.0400),
		sample("m5.large", "us-east-1b", 0.0200),
		sample("m5.large", "us-east-1c", 0.0300),
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, "us-east-1b", offers[0].Zone)
	require.InDelta(t, 0.0200, offers[0].Price, 1e-9)

	// The winner must be a true minimum over every zone.
	for _, p := range []float64{0.0400, 0.0300} {
		require.LessOrEqual(t, offers[0].Price, p)
	}
}

func TestRankZoneTieBreakIsLexicographic(t *testing.T) {
	offers, err := Rank([]models.PriceSample{
		sample("m5.large", "us-east-1c", 0.0300),
		sample("m5.large", "us-east-1a", 0.0300),
		sample("m5.large", "us-east-1b", 0.0300),
	})
	require.NoError(t, err)
	require.Equal(t, "us-east-1a", offers[0].Zone)
}

func TestRankOrdersOffersAscendingByPrice(t *testing.T) {
	offers, err := Rank([]models.PriceSample{
		sample("r5.large", "us-east-1a", 0.0523),
		sample("c5.large", "us-east-1b", 0.0298),
		sample("m5.large", "us-east-1a", 0.0350),
		sample("m5.large", "us-east-1b", 0.0411),
	})
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for i := 1; i < len(offers); i++ {
		require.LessOrEqual(t, offers[i-1].Price, offers[i].Price)
	}
	require.Equal(t, "c5.large", offers[0].InstanceType)
	require.Equal(t, "m5.large", offers[1].InstanceType)
	require.Equal(t, "us-east-1a", offers[1].Zone)
	require.Equal(t, "r5.large", offers[2].InstanceType)
}

func TestRankEqualPricesOrderByTypeName(t *testing.T) {
	offers, err := Rank([]models.PriceSample{
		sample("r5.large", "us-east-1a", 0.0300),
		sample("c5.large", "us-east-1a", 0.0300),
		sample("m5.large", "us-east-1a", 0.0300),
	})
	require.NoError(t, err)
	require.Equal(t, "c5.large", offers[0].InstanceType)
	require.Equal(t, "m5.large", offers[1].InstanceType)
	require.Equal(t, "r5.large", offers[2].InstanceType)
}

func TestRankAveragesPerZone(t *testing.T) {
	offers, err := Rank([]models.PriceSample{
		sample("m5.large", "us-east-1a", 0.0300),
		sample("m5.large", "us-east-1a", 0.0500),
		sample("m5.large", "us-east-1b", 0.0450),
	})
	require.NoError(t, err)
	// Zone a averages to 0.0400, zone b stays 0.0450.
	require.Equal(t, "us-east-1a", offers[0].Zone)
	require.InDelta(t, 0.0400, offers[0].Price, 1e-9)
}

func TestRankEmptyHistoryIsFatal(t *testing.T) {
	_, err := Rank(nil)
	require.ErrorIs(t, err, ErrNoHistory)
}
