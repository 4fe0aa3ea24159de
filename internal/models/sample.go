package models

import "time"

// Channel identifies which telemetry stream a sample belongs to.
type Channel int

const (
	ChannelTemperature Channel = iota
	ChannelRotation
)

func (c Channel) String() string {
	switch c {
	case ChannelTemperature:
		return "temperature"
	case ChannelRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Sample is one recorded telemetry reading. Value keeps the text exactly as
// the device framed it so the on-disk log preserves the firmware's precision.
type Sample struct {
	Index     uint64    `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Channel   Channel   `json:"channel"`
	Value     string    `json:"value"`
}
