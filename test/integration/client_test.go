package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/healthtrack/healthtrack/internal/domain/assistant"
	"github.com/healthtrack/healthtrack/internal/domain/documents"
	"github.com/healthtrack/healthtrack/internal/domain/medication"
	"github.com/healthtrack/healthtrack/internal/domain/profile"
	"github.com/healthtrack/healthtrack/internal/domain/reading"
	"github.com/healthtrack/healthtrack/internal/domain/symptom"
	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/internal/platform/token"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func TestAuthenticatedListing(t *testing.T) {
	srv := startSandbox(t)
	api, _ := login(t, srv.URL)
	ctx := context.Background()

	docs, total, err := documents.NewClient(api).List(ctx, documents.Filter{})
	if err != nil {
		t.Fatalf("documents List() error = %v", err)
	}
	if total == 0 || len(docs) == 0 {
		t.Error("expected seeded documents")
	}

	meds, _, err := medication.NewClient(api).List(ctx, medication.Filter{Status: medication.StatusActive})
	if err != nil {
		t.Fatalf("medications List() error = %v", err)
	}
	for _, m := range meds {
		if m.Status != medication.StatusActive {
			t.Errorf("status filter leaked %q", m.Status)
		}
	}
}

func TestUnauthorizedClearsTokenOnce(t *testing.T) {
	srv := startSandbox(t)

	// A garbage token passes the client's store lookup but fails the
	// sandbox's signature check, producing a 401.
	store := token.NewMemStore("not-a-valid-jwt")
	api := rest.New(srv.URL, store)

	_, _, err := medication.NewClient(api).List(context.Background(), medication.Filter{})
	if !rest.IsUnauthorized(err) {
		t.Fatalf("List() error = %v, want 401", err)
	}

	// The stored token must be gone so the next attempt starts clean.
	if _, err := store.Token(context.Background()); !errors.Is(err, token.ErrNotFound) {
		t.Errorf("token after 401 = %v, want ErrNotFound", err)
	}

	// The follow-up request goes out anonymously and still gets 401; the
	// client never retries or loops.
	_, _, err = medication.NewClient(api).List(context.Background(), medication.Filter{})
	if !rest.IsUnauthorized(err) {
		t.Fatalf("anonymous List() error = %v, want 401", err)
	}
}

func TestSymptomRootMountedRoutes(t *testing.T) {
	srv := startSandbox(t)
	api, _ := login(t, srv.URL)
	ctx := context.Background()

	syms := symptom.NewClient(api)

	items, _, err := syms.List(ctx, symptom.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded symptoms")
	}

	recent, err := syms.Recent(ctx, 365)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) == 0 {
		t.Error("expected recent symptoms within a year")
	}

	created, err := syms.BulkCreate(ctx, []symptom.Symptom{
		{Description: "Fatigue"},
		{Description: "Insomnia", Severity: symptom.SeveritySevere},
	})
	if err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("BulkCreate() returned %d records", len(created))
	}
	if created[0].Severity != symptom.SeverityMild {
		t.Errorf("blank severity defaulted to %q, want mild", created[0].Severity)
	}
}

func TestReadingRoundTrip(t *testing.T) {
	srv := startSandbox(t)
	api, _ := login(t, srv.URL)
	ctx := context.Background()

	readings := reading.NewClient(api)

	sys, dia := 118, 76
	bp := reading.Reading{Type: reading.TypeBloodPressure, Systolic: &sys, Diastolic: &dia}
	if err := readings.Create(ctx, &bp); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bp.Unit != "mmHg" {
		t.Errorf("unit defaulted to %q, want mmHg", bp.Unit)
	}
	if got := bp.FormatValue(); got != "118/76 mmHg" {
		t.Errorf("FormatValue() = %q", got)
	}

	items, _, err := readings.List(ctx, reading.Filter{Type: reading.TypeBloodPressure})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	found := false
	for _, r := range items {
		if r.ID == bp.ID {
			found = true
		}
	}
	if !found {
		t.Error("created reading missing from listing")
	}
}

func TestDocumentSearchAndMetadata(t *testing.T) {
	srv := startSandbox(t)
	api, _ := login(t, srv.URL)
	ctx := context.Background()

	docs := documents.NewClient(api)

	uploaded, err := docs.Upload(ctx, "cbc_panel.pdf", strings.NewReader("%PDF-1.4 fake"), documents.TypeLabResult)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if uploaded.Status != documents.StatusPending {
		t.Errorf("uploaded status = %q, want pending", uploaded.Status)
	}

	hits, total, err := docs.Search(ctx, "cbc", pagination.Params{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total == 0 || len(hits) == 0 {
		t.Fatal("uploaded document not found by search")
	}

	newName := "cbc_panel_2026.pdf"
	updated, err := docs.UpdateMetadata(ctx, uploaded.ID, documents.Metadata{Filename: &newName})
	if err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}
	if updated.Filename != newName {
		t.Errorf("filename = %q, want %q", updated.Filename, newName)
	}
}

func TestAssistantAndProfile(t *testing.T) {
	srv := startSandbox(t)
	api, _ := login(t, srv.URL)
	ctx := context.Background()

	ans, err := assistant.NewClient(api).Ask(ctx, "What am I taking?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Answer == "" {
		t.Error("Ask() returned an empty answer")
	}

	users := profile.NewClient(api)
	me, err := users.Me(ctx)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if me.Name == "" {
		t.Error("profile has no name")
	}

	w := 70.0
	updated, err := users.UpdateProfile(ctx, profile.ProfilePatch{WeightKG: &w})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.WeightKG == nil || *updated.WeightKG != 70.0 {
		t.Errorf("weight after patch = %v", updated.WeightKG)
	}
	if updated.Name != me.Name {
		t.Errorf("patch must not touch name: %q -> %q", me.Name, updated.Name)
	}
}
