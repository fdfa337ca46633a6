package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const m5LargeProduct = `{
  "product": {"attributes": {"instanceType": "m5.large"}},
  "terms": {
    "OnDemand": {
      "SKU.JRTCKXETXF": {
        "priceDimensions": {
          "SKU.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0960000000"}
          }
        }
      }
    }
  }
}`

type fakeProductsAPI struct {
	priceList []string
	err       error
	calls     int
	lastInput *pricing.GetProductsInput
}

func (f *fakeProductsAPI) GetProducts(_ context.Context, params *pricing.GetProductsInput, _ ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.calls++
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &pricing.GetProductsOutput{PriceList: f.priceList}, nil
}

func TestAPIPricer(t *testing.T) {
	api := &fakeProductsAPI{priceList: []string{m5LargeProduct}}
	p := NewAPIPricerWithClient(api, "us-east-1")

	price, err := p.OnDemandPrice(context.Background(), "m5.large")
	require.NoError(t, err)
	assert.Equal(t, 0.096, price)

	// second lookup is served from the cache
	_, err = p.OnDemandPrice(context.Background(), "m5.large")
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)

	require.NotNil(t, api.lastInput)
	assert.Equal(t, "AmazonEC2", *api.lastInput.ServiceCode)
	var location string
	for _, f := range api.lastInput.Filters {
		if *f.Field == "location" {
			location = *f.Value
		}
	}
	assert.Equal(t, "US East (N. Virginia)", location)
}

func TestAPIPricerUnknownType(t *testing.T) {
	p := NewAPIPricerWithClient(&fakeProductsAPI{}, "us-east-1")

	_, err := p.OnDemandPrice(context.Background(), "bogus.large")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownInstanceType))
}

func TestAPIPricerPropagatesErrors(t *testing.T) {
	apiErr := errors.New("access denied")
	p := NewAPIPricerWithClient(&fakeProductsAPI{err: apiErr}, "us-east-1")

	_, err := p.OnDemandPrice(context.Background(), "m5.large")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiErr))
}

func TestExtractOnDemandPriceInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{"},
		{"no terms", `{}`},
		{"no on demand", `{"terms": {}}`},
		{"empty on demand", `{"terms": {"OnDemand": {}}}`},
		{"no usd", `{"terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"pricePerUnit": {}}}}}}}`},
		{"bad number", `{"terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"pricePerUnit": {"USD": "x"}}}}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractOnDemandPrice(tt.doc)
			assert.Error(t, err)
		})
	}
}
