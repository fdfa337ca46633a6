package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/ec2spend/pkg/pricing"
)

// PrintPriceTable prints the hourly and monthly on-demand price of every type in table
func PrintPriceTable(w io.Writer, table pricing.PriceTable) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "INSTANCE TYPE\tHOURLY\tALTERNATE\tMONTHLY")

	for _, instanceType := range table.Types() {
		entry := table[instanceType]

		alternate := "-"
		if entry.Alternate > 0 {
			alternate = fmt.Sprintf("$%.4f", entry.Alternate)
		}

		fmt.Fprintf(tw, "%s\t$%.4f\t%s\t$%.2f\n",
			instanceType,
			entry.OnDemand,
			alternate,
			entry.OnDemand*pricing.HoursPerMonth,
		)
	}

	tw.Flush()
}
