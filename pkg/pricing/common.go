package pricing

import (
	"fmt"
	"strconv"

	"github.com/younsl/ec2spend/pkg/utils"
)

// GetRegionDescriptiveName returns the human-readable region name used in AWS Pricing API
func GetRegionDescriptiveName(region string) string {
	return utils.GetRegionDescriptiveName(region)
}

// ExtractOnDemandPrice extracts the hourly on-demand USD price from a Pricing API product document
func ExtractOnDemandPrice(priceJSON string) (float64, error) {
	priceData, err := utils.ParseJSON(priceJSON)
	if err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	terms, ok := priceData["terms"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("terms field not found or invalid")
	}

	onDemand, ok := terms["OnDemand"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("OnDemand field not found or invalid")
	}

	skuOffer, err := utils.GetFirstMapValue(onDemand)
	if err != nil {
		return 0, fmt.Errorf("no SKU offer found")
	}

	skuOfferMap, ok := skuOffer.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("SKU offer is not a map")
	}

	priceDimensions, ok := skuOfferMap["priceDimensions"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("priceDimensions field not found or invalid")
	}

	dimension, err := utils.GetFirstMapValue(priceDimensions)
	if err != nil {
		return 0, fmt.Errorf("no price dimension found")
	}

	dimensionMap, ok := dimension.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("price dimension is not a map")
	}

	usd, err := utils.GetNestedString(dimensionMap, "pricePerUnit", "USD")
	if err != nil {
		return 0, fmt.Errorf("USD price not found or invalid: %w", err)
	}

	price, err := strconv.ParseFloat(usd, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing price: %w", err)
	}

	return price, nil
}
