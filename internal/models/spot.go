package models

import "time"

// Image represents a bootable machine image owned by the caller
type Image struct {
	ImageID     string
	Name        string
	Description string
	CreatedAt   time.Time
}

// KeyPair represents an access credential registered with the provider
type KeyPair struct {
	Name        string
	Fingerprint string
}

// SecurityGroup represents a named network access-control policy
type SecurityGroup struct {
	GroupID     string
	Name        string
	Description string
}

// PriceSample is one observed spot price point
type PriceSample struct {
	InstanceType string
	Zone         string
	Price        float64
	Timestamp    time.Time
}

// RankedOffer is a (type, cheapest zone, averaged price) ranking entry.
// Price is the per-zone average truncated to 4 decimal places.
type RankedOffer struct {
	InstanceType string
	Zone         string
	Price        float64
}

// LaunchSpec is the fully resolved reservation request. It is built
// once per run after the user confirms a selection and never mutated.
type LaunchSpec struct {
	ImageID      string
	KeyName      string
	GroupID      string
	InstanceType string
	Zone         string
	BidPrice     float64
}

// SpotReceipt carries the provider's response to a reservation request
type SpotReceipt struct {
	RequestID     string
	State         string
	StatusCode    string
	StatusMessage string
}
