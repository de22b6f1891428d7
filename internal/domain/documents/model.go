package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document types as defined by the backend.
const (
	TypeLabResult     = "lab_result"
	TypePrescription  = "prescription"
	TypeImagingReport = "imaging_report"
	TypeOther         = "other"
)

var validTypes = map[string]bool{
	TypeLabResult: true, TypePrescription: true, TypeImagingReport: true, TypeOther: true,
}

// ValidType reports whether t is a document type the backend accepts.
func ValidType(t string) bool {
	return validTypes[t]
}

// Processing statuses for an uploaded document.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// Document mirrors the backend's document record. The client never owns
// this data; it only displays and searches it.
type Document struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Source   string    `json:"source"`
	Summary  *string   `json:"summary,omitempty"`
}

// Metadata is the PATCHable subset of a document.
type Metadata struct {
	Filename *string    `json:"filename,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Source   *string    `json:"source,omitempty"`
}

var typeLabels = map[string]string{
	TypeLabResult:     "Lab Result",
	TypePrescription:  "Prescription",
	TypeImagingReport: "Imaging Report",
	TypeOther:         "Other",
}

// TypeLabel maps a document type to its display name.
func TypeLabel(t string) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Other"
}
