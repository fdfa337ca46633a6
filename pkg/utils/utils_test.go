package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTagsMap(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("web-1")},
		{Key: aws.String("env"), Value: nil},
		{Key: nil, Value: aws.String("orphan")},
	}

	got := GetTagsMap(tags)

	assert.Equal(t, map[string]string{"Name": "web-1", "env": ""}, got)
	assert.Empty(t, GetTagsMap(nil))
}

func TestSafeDeref(t *testing.T) {
	assert.Equal(t, "", SafeDeref(nil))
	assert.Equal(t, "x", SafeDeref(aws.String("x")))
	assert.Equal(t, 0, SafeDerefInt32(nil))
	assert.Equal(t, 8, SafeDerefInt32(aws.Int32(8)))
}

func TestRegionDescriptiveName(t *testing.T) {
	tests := []struct {
		region string
		want   string
		valid  bool
	}{
		{"us-east-1", "US East (N. Virginia)", true},
		{"eu-west-1", "EU (Ireland)", true},
		{"ap-southeast-3", "Asia Pacific (Jakarta)", true},
		{"ap-southeast-5", "Asia Pacific (Malaysia)", true},
		{"mx-central-1", "Mexico (Central)", true},
		{"mars-north-1", "US East (N. Virginia)", false},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRegionDescriptiveName(tt.region))
			assert.Equal(t, tt.valid, IsValidRegion(tt.region))
		})
	}
	assert.Equal(t, "us-east-1", GetDefaultRegion())
}

func TestGetNestedString(t *testing.T) {
	data, err := ParseJSON(`{"a":{"b":{"c":"0.0960000000"}},"n":1}`)
	require.NoError(t, err)

	got, err := GetNestedString(data, "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, "0.0960000000", got)

	_, err = GetNestedString(data, "a", "missing", "c")
	assert.Error(t, err)

	_, err = GetNestedString(data, "n")
	assert.Error(t, err)
}

func TestGetFirstMapValue(t *testing.T) {
	v, err := GetFirstMapValue(map[string]interface{}{"only": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = GetFirstMapValue(map[string]interface{}{})
	assert.Error(t, err)
}

func TestParseAndFormatJSON(t *testing.T) {
	_, err := ParseJSON("{not json")
	assert.Error(t, err)

	out, err := FormatJSON(map[string]int{"count": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"count\": 2\n}", out)
}
