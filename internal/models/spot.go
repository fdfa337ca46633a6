package models

import "time"

// SpotPrice is one sample of the spot price history for an instance type
type SpotPrice struct {
	InstanceType     string
	AvailabilityZone string
	Price            float64
	Timestamp        time.Time
}
