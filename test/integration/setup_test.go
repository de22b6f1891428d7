// Package integration runs the real REST client against the sandbox backend
// end to end: login, authenticated calls, the 401 token-clear contract, and
// the dashboard's all-settled join.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/internal/platform/sandbox"
	"github.com/healthtrack/healthtrack/internal/platform/token"
)

const testSecret = "integration-test-secret"

func startSandbox(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(sandbox.New(testSecret, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// login authenticates against the sandbox and returns a client wired to a
// fresh in-memory token store holding the minted token.
func login(t *testing.T, baseURL string) (*rest.Client, *token.MemStore) {
	t.Helper()

	body := bytes.NewBufferString(`{"username":"integration"}`)
	resp, err := http.Post(baseURL+"/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}

	store := token.NewMemStore(out.AccessToken)
	return rest.New(baseURL, store), store
}
