package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/ec2spend/pkg/pricing"
)

// PrintPriceLookupStats prints how prices were looked up per instance type
func PrintPriceLookupStats(w io.Writer, stats []pricing.TypeStats) {
	if len(stats) == 0 {
		return
	}

	fmt.Fprintln(w, "\n## Price Lookup Statistics")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "INSTANCE TYPE\tSOURCE\tON-DEMAND LOOKUPS\tSPOT FETCHES\tCACHE HITS\tSPOT SAMPLES")

	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
			s.InstanceType,
			s.Source,
			s.OnDemandLookups,
			s.Fetches,
			s.CacheHits,
			s.Samples,
		)
	}

	tw.Flush()
}
