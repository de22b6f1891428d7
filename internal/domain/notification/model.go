package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeMedicationReminder = "medication_reminder"
	TypeDocumentProcessed  = "document_processed"
	TypeSideEffectAlert    = "side_effect_alert"
	TypeSystem             = "system"
)

// Notification severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

var validSeverities = map[string]bool{
	SeverityInfo: true, SeverityWarning: true, SeverityCritical: true,
}

func ValidSeverity(s string) bool {
	return validSeverities[s]
}

// Notification mirrors the backend's notification record.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the shape of GET /api/notifications/stats.
type Stats struct {
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	BySeverity map[string]int `json:"by_severity"`
}
