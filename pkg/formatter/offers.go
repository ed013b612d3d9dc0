package formatter

import (
	"fmt"
	"io"

	"github.com/younsl/spotbid/internal/models"
)

// PrintOffers prints the 1-indexed ranked offer menu. Column widths
// are fixed: 3-digit index, type left-justified in 20 chars, price as
// 8.4f, zone truncated to 16 chars. When on-demand prices are known
// the comparison columns are appended.
func PrintOffers(w io.Writer, offers []models.RankedOffer, onDemand map[string]float64) {
	withComparison := len(onDemand) > 0

	if withComparison {
		fmt.Fprintf(w, "%3s  %-20s  %8s  %-16s  %9s  %7s\n", "#", "TYPE", "PRICE", "ZONE", "ON-DEMAND", "SAVINGS")
	} else {
		fmt.Fprintf(w, "%3s  %-20s  %8s  %-16s\n", "#", "TYPE", "PRICE", "ZONE")
	}

	for i, offer := range offers {
		fmt.Fprintf(w, "%3d  %-20s  %8.4f  %-16s", i+1, offer.InstanceType, offer.Price, truncateZone(offer.Zone))
		if od, ok := onDemand[offer.InstanceType]; withComparison && ok && od > 0 {
			fmt.Fprintf(w, "  %9.4f  %6.1f%%", od, (1-offer.Price/od)*100)
		}
		fmt.Fprintln(w)
	}
}

func truncateZone(zone string) string {
	if len(zone) > 16 {
		return zone[:16]
	}
	return zone
}
