package symptom

import (
	"time"

	"github.com/google/uuid"
)

// Symptom severities.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCritical = "critical"
)

var validSeverities = map[string]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true, SeverityCritical: true,
}

// ValidSeverity reports whether s is a severity the backend accepts.
func ValidSeverity(s string) bool {
	return validSeverities[s]
}

// Symptom mirrors the backend's symptom record. A symptom may link to the
// medication suspected of causing it and to the document it was extracted
// from.
type Symptom struct {
	ID           uuid.UUID  `json:"id"`
	Description  string     `json:"description"`
	Severity     string     `json:"severity"`
	Date         time.Time  `json:"date"`
	Notes        *string    `json:"notes,omitempty"`
	MedicationID *uuid.UUID `json:"medication_id,omitempty"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
}

// Stats is the shape of GET /symptoms/stats/overview.
type Stats struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	MostCommon []string       `json:"most_common"`
}

// Display carries the presentation attributes of a severity.
type Display struct {
	Level int
	Color string
	Label string
}

var severityDisplay = map[string]Display{
	SeverityMild:     {Level: 1, Color: "#10B981", Label: "Mild"},
	SeverityModerate: {Level: 2, Color: "#F59E0B", Label: "Moderate"},
	SeveritySevere:   {Level: 3, Color: "#EF4444", Label: "Severe"},
	SeverityCritical: {Level: 4, Color: "#DC2626", Label: "Critical"},
}

// SeverityDisplay maps a severity to its level (1..4), color, and label.
// Unknown severities render as mild rather than failing.
func SeverityDisplay(severity string) Display {
	if d, ok := severityDisplay[severity]; ok {
		return d
	}
	return severityDisplay[SeverityMild]
}
