package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTable(t *testing.T) {
	table, err := CatalogTable("us-east-1")
	require.NoError(t, err)

	price, err := table.OnDemandPrice(context.Background(), "m5.large")
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)

	_, err = table.OnDemandPrice(context.Background(), "bogus.large")
	assert.True(t, errors.Is(err, ErrUnknownInstanceType))
}

func TestCatalogTableUnknownRegion(t *testing.T) {
	_, err := CatalogTable("xx-nowhere-1")
	assert.Error(t, err)
}
