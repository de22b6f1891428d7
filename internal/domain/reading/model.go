package reading

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reading types the backend records.
const (
	TypeBloodPressure    = "blood_pressure"
	TypeHeartRate        = "heart_rate"
	TypeGlucose          = "glucose"
	TypeSteps            = "steps"
	TypeWeight           = "weight"
	TypeTemperature      = "temperature"
	TypeOxygenSaturation = "oxygen_saturation"
)

var validTypes = map[string]bool{
	TypeBloodPressure: true, TypeHeartRate: true, TypeGlucose: true,
	TypeSteps: true, TypeWeight: true, TypeTemperature: true, TypeOxygenSaturation: true,
}

func ValidType(t string) bool {
	return validTypes[t]
}

// DefaultUnit returns the unit the backend assumes when none is supplied.
func DefaultUnit(t string) string {
	switch t {
	case TypeBloodPressure:
		return "mmHg"
	case TypeHeartRate:
		return "bpm"
	case TypeGlucose:
		return "mg/dL"
	case TypeSteps:
		return "steps"
	case TypeWeight:
		return "kg"
	case TypeTemperature:
		return "°C"
	case TypeOxygenSaturation:
		return "%"
	}
	return ""
}

// Reading mirrors the backend's health reading record. Blood pressure is
// the one structured type (systolic/diastolic pair); everything else is a
// single numeric value.
type Reading struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Value     *float64  `json:"value,omitempty"`
	Systolic  *int      `json:"systolic,omitempty"`
	Diastolic *int      `json:"diastolic,omitempty"`
	Unit      string    `json:"unit"`
	Date      time.Time `json:"date"`
}

// FormatValue renders the reading for display, e.g. "120/80 mmHg" or
// "72 bpm".
func (r Reading) FormatValue() string {
	unit := r.Unit
	if unit == "" {
		unit = DefaultUnit(r.Type)
	}
	if r.Type == TypeBloodPressure && r.Systolic != nil && r.Diastolic != nil {
		return fmt.Sprintf("%d/%d %s", *r.Systolic, *r.Diastolic, unit)
	}
	if r.Value == nil {
		return "—"
	}
	if *r.Value == float64(int64(*r.Value)) {
		return fmt.Sprintf("%d %s", int64(*r.Value), unit)
	}
	return fmt.Sprintf("%.1f %s", *r.Value, unit)
}
