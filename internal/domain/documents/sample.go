package documents

import (
	"time"

	"github.com/google/uuid"
)

// Sample returns the bundled fallback dataset shown when the backend has no
// documents or cannot be reached. Presentation only; never sent back to the
// server.
func Sample() []Document {
	summary := "Routine panel, all values within reference range."
	return []Document{
		{
			ID:       uuid.MustParse("6f1b3c0a-8a4d-4f8e-9b3a-111111111111"),
			Filename: "annual_blood_panel.pdf",
			Type:     TypeLabResult,
			Status:   StatusProcessed,
			Date:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Source:   "Quest Diagnostics",
			Summary:  &summary,
		},
		{
			ID:       uuid.MustParse("6f1b3c0a-8a4d-4f8e-9b3a-222222222222"),
			Filename: "lisinopril_rx.jpg",
			Type:     TypePrescription,
			Status:   StatusProcessed,
			Date:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			Source:   "Dr. Patel",
		},
		{
			ID:       uuid.MustParse("6f1b3c0a-8a4d-4f8e-9b3a-333333333333"),
			Filename: "chest_xray_report.pdf",
			Type:     TypeImagingReport,
			Status:   StatusProcessed,
			Date:     time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC),
			Source:   "City Imaging Center",
		},
	}
}
