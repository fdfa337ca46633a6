package models

// Volume represents an EBS volume
type Volume struct {
	VolumeID         string
	Size             int // GiB
	VolumeType       string
	State            string
	AvailabilityZone string
}
