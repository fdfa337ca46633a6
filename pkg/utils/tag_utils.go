package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// GetTagsMap converts a slice of tags to a map. Tags without a value map to "".
func GetTagsMap(tags []types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil {
			result[*tag.Key] = SafeDeref(tag.Value)
		}
	}
	return result
}
