package models

// InstanceStateRunning is the only lifecycle state that is ever priced
const InstanceStateRunning = "running"

// BlockDevice represents one block device mapping of an instance
type BlockDevice struct {
	DeviceName string
	VolumeID   string
}

// Instance represents an EC2 instance as returned by the inventory client
type Instance struct {
	InstanceID       string
	InstanceType     string
	Tags             map[string]string
	State            string
	AvailabilityZone string
	KeyName          string
	RootDeviceType   string
	Monitored        bool // detailed monitoring enabled
	Architecture     string
	ImageID          string
	Platform         string
	SecurityGroups   []string
	SpotRequestID    string // empty for on-demand instances
	BlockDevices     []BlockDevice
}

// Name returns the value of the Name tag or an empty string
func (i Instance) Name() string {
	return i.Tags["Name"]
}

// IsSpot reports whether the instance was launched from a spot request
func (i Instance) IsSpot() bool {
	return i.SpotRequestID != ""
}

// CostedInstance is an instance that passed filtering, annotated with its hourly costs
type CostedInstance struct {
	Instance
	EBSPrice   float64 // hourly storage cost of attached volumes
	StorageGiB int     // size of the volumes EBSPrice was computed from
	Price      float64 // hourly compute cost incl. monitoring surcharge
}
