package formatter

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/younsl/ec2spend/pkg/report"
	"github.com/younsl/ec2spend/pkg/utils"
)

type jsonRow struct {
	Key      string          `json:"key,omitempty"`
	Count    int             `json:"count"`
	Instance decimal.Decimal `json:"instance"`
	EBS      decimal.Decimal `json:"ebs"`
	Total    decimal.Decimal `json:"total"`
	Monthly  decimal.Decimal `json:"monthly"`
}

type jsonSection struct {
	Title string    `json:"title"`
	Rows  []jsonRow `json:"rows"`
}

type jsonReport struct {
	Sections         []jsonSection `json:"sections"`
	Total            jsonRow       `json:"total"`
	UnclaimedVolumes []string      `json:"unclaimedVolumes,omitempty"`
}

func toJSONRow(key string, agg report.GroupAggregate) jsonRow {
	return jsonRow{
		Key:      key,
		Count:    agg.Count,
		Instance: agg.InstanceCost,
		EBS:      agg.EBSCost,
		Total:    agg.Total(),
		Monthly:  agg.Monthly(),
	}
}

// WriteCostReportJSON writes the cost breakdown as indented JSON
func WriteCostReportJSON(w io.Writer, r *report.Report) error {
	out := jsonReport{
		Total:            toJSONRow("", r.Total),
		UnclaimedVolumes: r.UnclaimedVolumes,
	}

	for _, section := range r.Sections() {
		js := jsonSection{Title: section.Title, Rows: []jsonRow{}}
		for _, row := range section.Rows() {
			js.Rows = append(js.Rows, toJSONRow(row.Key, row.GroupAggregate))
		}
		out.Sections = append(out.Sections, js)
	}

	s, err := utils.FormatJSON(out)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, s)
	return err
}
