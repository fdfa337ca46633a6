package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/younsl/ec2spend/pkg/report"
)

const (
	reportWidth = 90
	keyWidth    = 30

	costHeaderFormat = "%s | %8s | %8s | %8s | %8s | %9s\n"
	costRowFormat    = "%s | %8d | %8s | %8s | %8s | %9s\n"
)

// WriteCostReport writes the fixed-width cost breakdown: one section per
// grouping followed by the grand total
func WriteCostReport(w io.Writer, r *report.Report) error {
	var b strings.Builder

	for _, section := range r.Sections() {
		b.WriteString(strings.Repeat("=", reportWidth) + "\n")
		fmt.Fprintf(&b, costHeaderFormat, FitLeft(section.Title, keyWidth), "Count", "Instance", "EBS", "Total", "Monthly")
		b.WriteString(strings.Repeat("-", reportWidth) + "\n")
		for _, row := range section.Rows() {
			writeCostRow(&b, row.Key, row.GroupAggregate)
		}
	}

	b.WriteString(strings.Repeat("=", reportWidth) + "\n")
	writeCostRow(&b, "Total", r.Total)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeCostRow rounds half to even, like printf does for exact halves
func writeCostRow(b *strings.Builder, key string, agg report.GroupAggregate) {
	fmt.Fprintf(b, costRowFormat,
		FitLeft(key, keyWidth),
		agg.Count,
		agg.InstanceCost.StringFixedBank(4),
		agg.EBSCost.StringFixedBank(4),
		agg.Total().StringFixedBank(4),
		agg.Monthly().StringFixedBank(2),
	)
}

// PrintCostSummary displays a one line summary of the report
func PrintCostSummary(w io.Writer, r *report.Report) {
	if r.Total.Count == 0 {
		fmt.Fprintln(w, "No running instances matched the filters.")
		return
	}

	var storageGiB, spot, monitored int
	for _, instance := range r.Instances {
		storageGiB += instance.StorageGiB
		if instance.IsSpot() {
			spot++
		}
		if instance.Monitored {
			monitored++
		}
	}

	fmt.Fprintf(w, "\n%s instances (%s spot, %s monitored) with %s of EBS storage: $%s per month\n",
		humanize.Comma(int64(r.Total.Count)),
		humanize.Comma(int64(spot)),
		humanize.Comma(int64(monitored)),
		humanize.IBytes(uint64(storageGiB)<<30),
		humanize.CommafWithDigits(r.Total.Monthly().InexactFloat64(), 2),
	)

	if n := len(r.UnclaimedVolumes); n > 0 {
		fmt.Fprintf(w, "%s volumes are not attached to any reported instance and were not counted.\n",
			humanize.Comma(int64(n)))
	}
}
