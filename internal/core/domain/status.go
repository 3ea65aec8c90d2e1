package domain

import (
	"fmt"
	"time"
)

// StatusBucket classifies the severity of a line's current disruption.
type StatusBucket string

const (
	StatusOnTime     StatusBucket = "on_time"
	StatusMinorDelay StatusBucket = "minor_delay"
	StatusMajorDelay StatusBucket = "major_delay"
	StatusSuspended  StatusBucket = "suspended"
)

// Delay thresholds, in minutes.
const (
	minorDelayMin = 5
	majorDelayMin = 15
)

// LineStatus is the live service state of one line.
type LineStatus struct {
	LineID    int64        `json:"line_id"`
	LineName  string       `json:"line_name"`
	DelayMin  int          `json:"delay_min"`
	Suspended bool         `json:"suspended"`
	Reason    string       `json:"reason,omitempty"`
	Bucket    StatusBucket `json:"bucket"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Classify buckets a line's state by its delay. Suspension overrides any
// delay value.
func (s LineStatus) Classify() StatusBucket {
	switch {
	case s.Suspended:
		return StatusSuspended
	case s.DelayMin >= majorDelayMin:
		return StatusMajorDelay
	case s.DelayMin >= minorDelayMin:
		return StatusMinorDelay
	default:
		return StatusOnTime
	}
}

// FormatDuration renders a journey duration for display: "45 min",
// "1 hr 5 min", "2 hr". Negative values render as "0 min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d hr", h)
	default:
		return fmt.Sprintf("%d hr %d min", h, m)
	}
}
