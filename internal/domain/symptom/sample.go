package symptom

import (
	"time"

	"github.com/google/uuid"
)

// Sample returns the bundled fallback dataset shown when the backend has no
// symptoms or cannot be reached. Presentation only.
func Sample() []Symptom {
	notes := "Started after the afternoon dose."
	return []Symptom{
		{
			ID:          uuid.MustParse("3a7c9e2b-5d1f-4a8c-b6e0-111111111111"),
			Description: "Headache",
			Severity:    SeverityMild,
			Date:        time.Date(2025, 6, 3, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:          uuid.MustParse("3a7c9e2b-5d1f-4a8c-b6e0-222222222222"),
			Description: "Dizziness",
			Severity:    SeverityModerate,
			Date:        time.Date(2025, 6, 5, 14, 0, 0, 0, time.UTC),
			Notes:       &notes,
		},
		{
			ID:          uuid.MustParse("3a7c9e2b-5d1f-4a8c-b6e0-333333333333"),
			Description: "Nausea",
			Severity:    SeverityMild,
			Date:        time.Date(2025, 6, 7, 20, 15, 0, 0, time.UTC),
		},
	}
}
