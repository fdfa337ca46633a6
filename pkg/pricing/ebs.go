package pricing

import (
	"sort"

	"github.com/younsl/ec2spend/internal/models"
)

// AssociateVolumes sets EBSPrice on every instance from the size of its attached volumes.
//
// A volume is claimed by the first instance referencing it and removed from the
// lookup, so no volume is ever counted twice. EC2 does not attach one volume to two
// instances; multi-attach io2 volumes are charged to the first instance only.
// Bindings to unknown volumes contribute nothing.
//
// It returns the sorted ids of volumes that no instance claimed.
func AssociateVolumes(instances []models.CostedInstance, volumes []models.Volume) []string {
	lookup := make(map[string]models.Volume, len(volumes))
	for _, v := range volumes {
		lookup[v.VolumeID] = v
	}

	for i := range instances {
		instances[i].EBSPrice = 0
		instances[i].StorageGiB = 0
		for _, bd := range instances[i].BlockDevices {
			v, ok := lookup[bd.VolumeID]
			if !ok {
				continue
			}
			delete(lookup, bd.VolumeID)
			instances[i].StorageGiB += v.Size
			instances[i].EBSPrice += float64(v.Size) * EBSHourlyRate
		}
	}

	unclaimed := make([]string, 0, len(lookup))
	for id := range lookup {
		unclaimed = append(unclaimed, id)
	}
	sort.Strings(unclaimed)

	return unclaimed
}

