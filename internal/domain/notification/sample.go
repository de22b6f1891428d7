package notification

import (
	"time"

	"github.com/google/uuid"
)

// Sample returns the bundled fallback dataset shown when the backend has no
// notifications or cannot be reached. Presentation only.
func Sample() []Notification {
	return []Notification{
		{
			ID:        uuid.MustParse("d1e2f3a4-b5c6-4d7e-8f9a-111111111111"),
			Type:      TypeMedicationReminder,
			Severity:  SeverityInfo,
			Title:     "Time for Lisinopril",
			Message:   "Your 10 mg morning dose is due.",
			CreatedAt: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.MustParse("d1e2f3a4-b5c6-4d7e-8f9a-222222222222"),
			Type:      TypeDocumentProcessed,
			Severity:  SeverityInfo,
			Title:     "Document processed",
			Message:   "annual_blood_panel.pdf has been analyzed.",
			Read:      true,
			CreatedAt: time.Date(2025, 6, 9, 16, 42, 0, 0, time.UTC),
		},
		{
			ID:        uuid.MustParse("d1e2f3a4-b5c6-4d7e-8f9a-333333333333"),
			Type:      TypeSideEffectAlert,
			Severity:  SeverityWarning,
			Title:     "Possible side effect",
			Message:   "Dizziness logged within 4 hours of Metformin.",
			CreatedAt: time.Date(2025, 6, 8, 19, 15, 0, 0, time.UTC),
		},
	}
}
