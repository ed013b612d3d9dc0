// Package ranker orders candidate instance types by their cheapest
// per-zone average spot price.
package ranker

import (
	"errors"
	"math"
	"sort"

	"github.com/younsl/spotbid/internal/models"
)

// ErrNoHistory is returned when the sample set is empty for every
// candidate type.
var ErrNoHistory = errors.New("no spot price history available for the candidate types")

// Rank aggregates samples by (type, zone), averages each zone's
// price, keeps the cheapest zone per type and returns one offer per
// type, ascending by price. Averages are truncated to 4 decimal
// places, matching floor(1e4*avg)/1e4. Equal zone averages resolve to
// the lexicographically smallest zone name and equal offer prices
// order by type name, so the ranking is deterministic regardless of
// map iteration.
func Rank(samples []models.PriceSample) ([]models.RankedOffer, error) {
	if len(samples) == 0 {
		return nil, ErrNoHistory
	}

	// (type, zone) -> running sum and count
	type acc struct {
		sum   float64
		count int
	}
	byType := map[string]map[string]*acc{}
	for _, s := range samples {
		zones, ok := byType[s.InstanceType]
		if !ok {
			zones = map[string]*acc{}
			byType[s.InstanceType] = zones
		}
		a, ok := zones[s.Zone]
		if !ok {
			a = &acc{}
			zones[s.Zone] = a
		}
		a.sum += s.Price
		a.count++
	}

	offers := make([]models.RankedOffer, 0, len(byType))
	for instanceType, zones := range byType {
		zoneNames := make([]string, 0, len(zones))
		for zone := range zones {
			zoneNames = append(zoneNames, zone)
		}
		sort.Strings(zoneNames)

		best := models.RankedOffer{InstanceType: instanceType, Price: math.Inf(1)}
		for _, zone := range zoneNames {
			a := zones[zone]
			avg := truncate4(a.sum / float64(a.count))
			if avg < best.Price {
				best.Zone = zone
				best.Price = avg
			}
		}
		offers = append(offers, best)
	}

	sort.Slice(offers, func(i, j int) bool {
		if offers[i].Price != offers[j].Price {
			return offers[i].Price < offers[j].Price
		}
		return offers[i].InstanceType < offers[j].InstanceType
	})
	return offers, nil
}

// truncate4 drops everything past the 4th decimal place
func truncate4(v float64) float64 {
	return math.Floor(v*1e4) / 1e4
}
