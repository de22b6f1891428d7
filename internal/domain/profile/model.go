package profile

import (
	"time"

	"github.com/google/uuid"
)

// MedicalCondition is a diagnosed condition on the user's profile.
type MedicalCondition struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	DiagnosedAt *time.Time `json:"diagnosed_at,omitempty"`
}

// User mirrors GET /api/users/me.
type User struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	DOB        *time.Time         `json:"dob,omitempty"`
	WeightKG   *float64           `json:"weight_kg,omitempty"`
	HeightCM   *float64           `json:"height_cm,omitempty"`
	Gender     *string            `json:"gender,omitempty"`
	Conditions []MedicalCondition `json:"conditions,omitempty"`
}

// ProfilePatch is the PATCHable subset of the profile.
type ProfilePatch struct {
	Name     *string    `json:"name,omitempty"`
	DOB      *time.Time `json:"dob,omitempty"`
	WeightKG *float64   `json:"weight_kg,omitempty"`
	HeightCM *float64   `json:"height_cm,omitempty"`
	Gender   *string    `json:"gender,omitempty"`
}

// AgeAt returns the age in whole years at the given instant, or -1 when the
// date of birth is unknown or in the future.
func AgeAt(dob *time.Time, now time.Time) int {
	if dob == nil || dob.After(now) {
		return -1
	}
	age := now.Year() - dob.Year()
	// Birthday not reached yet this year.
	anniversary := time.Date(now.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	return age
}
