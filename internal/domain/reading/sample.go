package reading

import (
	"time"

	"github.com/google/uuid"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

// Sample returns the bundled fallback dataset shown when the backend has no
// readings or cannot be reached. Presentation only.
func Sample() []Reading {
	return []Reading{
		{
			ID:        uuid.MustParse("b4d8f6a1-2c3e-4d5f-a6b7-111111111111"),
			Type:      TypeBloodPressure,
			Systolic:  intp(121),
			Diastolic: intp(79),
			Unit:      "mmHg",
			Date:      time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:    uuid.MustParse("b4d8f6a1-2c3e-4d5f-a6b7-222222222222"),
			Type:  TypeHeartRate,
			Value: floatp(68),
			Unit:  "bpm",
			Date:  time.Date(2025, 6, 10, 8, 5, 0, 0, time.UTC),
		},
		{
			ID:    uuid.MustParse("b4d8f6a1-2c3e-4d5f-a6b7-333333333333"),
			Type:  TypeGlucose,
			Value: floatp(94),
			Unit:  "mg/dL",
			Date:  time.Date(2025, 6, 10, 7, 45, 0, 0, time.UTC),
		},
	}
}
