package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/internal/platform/token"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(rest.New(srv.URL, token.NewMemStore("test-token")))
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/documents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("type") != TypeLabResult {
			t.Errorf("type filter = %q", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("limit") != "20" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(pagination.Page[Document]{
			Data:  Sample()[:2],
			Total: 2,
		})
	})

	docs, total, err := c.List(context.Background(), Filter{Type: TypeLabResult})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 || total != 2 {
		t.Errorf("List() = %d docs, total %d", len(docs), total)
	}
	if docs[0].Filename != "annual_blood_panel.pdf" {
		t.Errorf("first doc = %q", docs[0].Filename)
	}
}

func TestGet(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/"+id.String() {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Document{ID: id, Filename: "report.pdf", Type: TypeOther})
	})

	doc, err := c.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.ID != id || doc.Filename != "report.pdf" {
		t.Errorf("Get() = %+v", doc)
	}
}

func TestCreateValidation(t *testing.T) {
	c := NewClient(rest.New("http://unused", token.NewMemStore("t")))

	if err := c.Create(context.Background(), &Document{}); err == nil {
		t.Error("expected error for missing filename")
	}
	if err := c.Create(context.Background(), &Document{Filename: "x.pdf", Type: "selfie"}); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestUpdateMetadata(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		wantPath := fmt.Sprintf("/api/documents/%s/metadata", id)
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		var meta Metadata
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			t.Fatal(err)
		}
		if meta.Filename == nil || *meta.Filename != "renamed.pdf" {
			t.Errorf("patch body = %+v", meta)
		}
		json.NewEncoder(w).Encode(Document{ID: id, Filename: "renamed.pdf"})
	})

	name := "renamed.pdf"
	doc, err := c.UpdateMetadata(context.Background(), id, Metadata{Filename: &name})
	if err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}
	if doc.Filename != "renamed.pdf" {
		t.Errorf("updated filename = %q", doc.Filename)
	}
}

func TestDelete(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/documents/"+id.String() {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		_, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatal(err)
		}
		if hdr.Filename != "scan.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		if r.FormValue("type") != TypeImagingReport {
			t.Errorf("type = %q", r.FormValue("type"))
		}
		json.NewEncoder(w).Encode(Document{Filename: "scan.pdf", Status: StatusPending})
	})

	doc, err := c.Upload(context.Background(), "scan.pdf", strings.NewReader("%PDF"), TypeImagingReport)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.Status != StatusPending {
		t.Errorf("uploaded doc status = %q", doc.Status)
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "cholesterol" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		json.NewEncoder(w).Encode(pagination.Page[Document]{Data: Sample()[:1], Total: 1})
	})

	docs, total, err := c.Search(context.Background(), "cholesterol", pagination.Params{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || total != 1 {
		t.Errorf("Search() = %d docs, total %d", len(docs), total)
	}
}

func TestTypeLabel(t *testing.T) {
	if got := TypeLabel(TypeLabResult); got != "Lab Result" {
		t.Errorf("TypeLabel(lab_result) = %q", got)
	}
	if got := TypeLabel("unknown_kind"); got != "Other" {
		t.Errorf("TypeLabel(unknown) = %q", got)
	}
}
