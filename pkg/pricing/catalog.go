package pricing

import (
	"fmt"

	ec2instancesinfo "github.com/LeanerCloud/ec2-instances-info"
)

// CatalogTable builds a PriceTable for region from the ec2-instances-info
// catalog bundled with the binary. Types without a Linux on-demand price in the
// region are left out.
func CatalogTable(region string) (PriceTable, error) {
	data, err := ec2instancesinfo.Data()
	if err != nil {
		return nil, fmt.Errorf("error loading instance catalog: %w", err)
	}

	table := make(PriceTable)
	for _, instance := range *data {
		regionPrices, ok := instance.Pricing[region]
		if !ok || regionPrices.Linux.OnDemand == 0 {
			continue
		}
		table[instance.InstanceType] = PriceEntry{OnDemand: regionPrices.Linux.OnDemand}
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("instance catalog has no prices for region %s", region)
	}

	return table, nil
}
