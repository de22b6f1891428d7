package medication

import (
	"time"

	"github.com/google/uuid"
)

// Sample returns the 3 canned entries shown when the backend has no
// medications or cannot be reached. Presentation only.
func Sample() []Medication {
	notes := "Take with food."
	return []Medication{
		{
			ID:         uuid.MustParse("9c2e5d1f-0b7a-4c3d-8e9f-111111111111"),
			Name:       "Lisinopril",
			Dosage:     "10 mg",
			Frequency:  FreqOnceDaily,
			Status:     StatusActive,
			Prescriber: "Dr. Patel",
			StartDate:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         uuid.MustParse("9c2e5d1f-0b7a-4c3d-8e9f-222222222222"),
			Name:       "Metformin",
			Dosage:     "500 mg",
			Frequency:  FreqTwiceDaily,
			Status:     StatusActive,
			Prescriber: "Dr. Okafor",
			StartDate:  time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
			Notes:      &notes,
		},
		{
			ID:         uuid.MustParse("9c2e5d1f-0b7a-4c3d-8e9f-333333333333"),
			Name:       "Ibuprofen",
			Dosage:     "200 mg",
			Frequency:  FreqAsNeeded,
			Status:     StatusOnHold,
			Prescriber: "Dr. Patel",
			StartDate:  time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}
