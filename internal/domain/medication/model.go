package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication statuses.
const (
	StatusActive       = "active"
	StatusCompleted    = "completed"
	StatusDiscontinued = "discontinued"
	StatusOnHold       = "on_hold"
)

var validStatuses = map[string]bool{
	StatusActive: true, StatusCompleted: true, StatusDiscontinued: true, StatusOnHold: true,
}

// ValidStatus reports whether s is a medication status the backend accepts.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Dosing frequencies.
const (
	FreqOnceDaily       = "once_daily"
	FreqTwiceDaily      = "twice_daily"
	FreqThreeTimesDaily = "three_times_daily"
	FreqFourTimesDaily  = "four_times_daily"
	FreqWeekly          = "weekly"
	FreqAsNeeded        = "as_needed"
)

var validFrequencies = map[string]bool{
	FreqOnceDaily: true, FreqTwiceDaily: true, FreqThreeTimesDaily: true,
	FreqFourTimesDaily: true, FreqWeekly: true, FreqAsNeeded: true,
}

func ValidFrequency(f string) bool {
	return validFrequencies[f]
}

// Medication mirrors the backend's medication record.
type Medication struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage"`
	Frequency  string     `json:"frequency"`
	Status     string     `json:"status"`
	Prescriber string     `json:"prescriber"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

var statusColors = map[string]string{
	StatusActive:       "#10B981",
	StatusCompleted:    "#6B7280",
	StatusDiscontinued: "#EF4444",
	StatusOnHold:       "#F59E0B",
}

// StatusColor maps a medication status to its display color. Unknown
// statuses fall back to the completed/neutral gray.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[StatusCompleted]
}

var frequencyLabels = map[string]string{
	FreqOnceDaily:       "Once daily",
	FreqTwiceDaily:      "Twice daily",
	FreqThreeTimesDaily: "Three times daily",
	FreqFourTimesDaily:  "Four times daily",
	FreqWeekly:          "Weekly",
	FreqAsNeeded:        "As needed",
}

// FrequencyLabel maps a frequency to its display name; unknown values pass
// through unchanged.
func FrequencyLabel(f string) string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return f
}
