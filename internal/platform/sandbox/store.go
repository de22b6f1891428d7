package sandbox

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/domain/documents"
	"github.com/healthtrack/healthtrack/internal/domain/medication"
	"github.com/healthtrack/healthtrack/internal/domain/notification"
	"github.com/healthtrack/healthtrack/internal/domain/profile"
	"github.com/healthtrack/healthtrack/internal/domain/reading"
	"github.com/healthtrack/healthtrack/internal/domain/symptom"
)

// store holds the sandbox's in-memory records. Everything lives behind one
// mutex; the sandbox is a single-user fixture, not a production database.
type store struct {
	mu            sync.Mutex
	documents     map[uuid.UUID]documents.Document
	medications   map[uuid.UUID]medication.Medication
	symptoms      map[uuid.UUID]symptom.Symptom
	readings      map[uuid.UUID]reading.Reading
	notifications map[uuid.UUID]notification.Notification
	user          profile.User
}

func newStore() *store {
	return &store{
		documents:     make(map[uuid.UUID]documents.Document),
		medications:   make(map[uuid.UUID]medication.Medication),
		symptoms:      make(map[uuid.UUID]symptom.Symptom),
		readings:      make(map[uuid.UUID]reading.Reading),
		notifications: make(map[uuid.UUID]notification.Notification),
	}
}

// seed populates the store with a coherent demo dataset: a user, their
// medications, a few documents, symptoms linked to a medication, readings,
// and the notifications those events would have produced. Record dates are
// set relative to now so recency queries keep returning them.
func (s *store) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	dob := time.Date(1988, 4, 12, 0, 0, 0, 0, time.UTC)
	weight, height := 72.5, 178.0
	gender := "male"
	s.user = profile.User{
		ID:       uuid.New(),
		Name:     "Sam Rivera",
		DOB:      &dob,
		WeightKG: &weight,
		HeightCM: &height,
		Gender:   &gender,
		Conditions: []profile.MedicalCondition{
			{ID: uuid.New(), Name: "Hypertension"},
			{ID: uuid.New(), Name: "Type 2 diabetes"},
		},
	}

	for i, d := range documents.Sample() {
		d.ID = uuid.New()
		d.Date = now.AddDate(0, 0, -(7 * (i + 1)))
		s.documents[d.ID] = d
	}

	var metforminID uuid.UUID
	for i, m := range medication.Sample() {
		m.ID = uuid.New()
		m.StartDate = now.AddDate(0, -(i + 1), 0)
		if m.Name == "Metformin" {
			metforminID = m.ID
		}
		s.medications[m.ID] = m
	}

	for i, sym := range symptom.Sample() {
		sym.ID = uuid.New()
		sym.Date = now.AddDate(0, 0, -(2*i + 1))
		if i == 1 {
			// The dizziness entry links to the suspected medication.
			sym.MedicationID = &metforminID
		}
		s.symptoms[sym.ID] = sym
	}

	for i, r := range reading.Sample() {
		r.ID = uuid.New()
		r.Date = now.Add(-time.Duration(i+1) * 12 * time.Hour)
		s.readings[r.ID] = r
	}

	for i, n := range notification.Sample() {
		n.ID = uuid.New()
		n.CreatedAt = now.Add(-time.Duration(i+1) * 6 * time.Hour)
		s.notifications[n.ID] = n
	}
}

// paginate sorts items with less and slices out one page.
func paginate[T any](items []T, less func(a, b T) bool, limit, offset int) ([]T, int) {
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })
	total := len(items)
	if offset >= total {
		return []T{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total
}
