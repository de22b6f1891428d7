package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/healthtrack/healthtrack/internal/platform/token"
)

// countingStore records Clear calls so the 401 contract can be asserted.
type countingStore struct {
	mu     sync.Mutex
	tok    string
	clears int
}

func (s *countingStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok == "" {
		return "", token.ErrNotFound
	}
	return s.tok, nil
}

func (s *countingStore) Save(ctx context.Context, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
	return nil
}

func (s *countingStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
	s.clears++
	return nil
}

func (s *countingStore) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore("tok-1"))
	var out map[string]bool
	if err := c.Get(context.Background(), "/api/documents", nil, &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-1")
	}
}

func TestNoBearerHeaderWhenTokenAbsent(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore(""))
	if err := c.Get(context.Background(), "/api/documents", nil, &map[string]any{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hasAuth {
		t.Error("Authorization header must be absent when no token is stored")
	}
}

func TestUnauthorizedClearsTokenOnceAndPropagates(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &countingStore{tok: "stale"}
	c := New(srv.URL, store)

	err := c.Get(context.Background(), "/api/medications", nil, &map[string]any{})
	if err == nil {
		t.Fatal("expected an error for 401")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected APIError with 401, got %v", err)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized should report true")
	}
	if store.clearCount() != 1 {
		t.Errorf("token cleared %d times, want exactly 1", store.clearCount())
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1 (no automatic retry)", requests)
	}
}

func TestPersistentUnauthorizedNeverLoops(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &countingStore{tok: "stale"}
	c := New(srv.URL, store)

	// Two independent logical requests against a backend that always 401s.
	for i := 0; i < 2; i++ {
		if err := c.Get(context.Background(), "/api/documents", nil, nil); !IsUnauthorized(err) {
			t.Fatalf("request %d: expected 401 APIError, got %v", i, err)
		}
	}
	if requests != 2 {
		t.Errorf("server saw %d requests for 2 logical calls, want 2", requests)
	}
	// First call clears the stored token; the second finds none to clear but
	// the store Clear is still invoked at most once per logical request.
	if store.clearCount() > 2 {
		t.Errorf("token cleared %d times across 2 calls, want <= 2", store.clearCount())
	}
}

func TestTokenClearFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, failingClearStore{})
	err := c.Get(context.Background(), "/api/documents", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected the original 401 even when Clear fails, got %v", err)
	}
}

type failingClearStore struct{}

func (failingClearStore) Token(ctx context.Context) (string, error) { return "tok", nil }
func (failingClearStore) Save(ctx context.Context, tok string) error {
	return nil
}
func (failingClearStore) Clear(ctx context.Context) error {
	return errors.New("keychain locked")
}

func TestErrorBodySnippetPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"document not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore("tok"))
	err := c.Get(context.Background(), "/api/documents/xyz", nil, nil)
	if !IsNotFound(err) {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if !strings.Contains(err.Error(), "document not found") {
		t.Errorf("error should carry the body snippet, got %q", err.Error())
	}
}

func TestQueryParamsEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore("tok"))
	q := url.Values{}
	q.Set("status", "active")
	q.Set("limit", "20")
	if err := c.Get(context.Background(), "/api/medications", q, &[]any{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery.Get("status") != "active" || gotQuery.Get("limit") != "20" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"1"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore("tok"))
	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "/api/symptoms", map[string]string{"description": "headache"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, "headache") {
		t.Errorf("body = %q", gotBody)
	}
	if out.ID != "1" {
		t.Errorf("decoded id = %q", out.ID)
	}
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		if hdr.Filename != "labs.pdf" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		if r.FormValue("type") != "lab_result" {
			t.Errorf("type field = %q", r.FormValue("type"))
		}
		fmt.Fprint(w, `{"id":"doc-1"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, token.NewMemStore("tok"))
	var out struct {
		ID string `json:"id"`
	}
	err := c.PostMultipart(context.Background(), "/api/documents/upload", "file", "labs.pdf",
		strings.NewReader("%PDF-1.4"), map[string]string{"type": "lab_result"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != "doc-1" {
		t.Errorf("id = %q", out.ID)
	}
}

func TestContextCancellationPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, token.NewMemStore("tok"))
	err := c.Get(ctx, "/api/documents", nil, nil)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
