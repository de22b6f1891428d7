package main

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/healthtrack/healthtrack/internal/config"
	"github.com/healthtrack/healthtrack/internal/platform/loader"
)

func testApp(sampleFallback bool) *app {
	return &app{
		cfg: &config.Config{SampleFallback: sampleFallback},
		log: zerolog.Nop(),
	}
}

func TestLoadRespectsFallbackSetting(t *testing.T) {
	fetchErr := errors.New("backend down")
	failing := func(ctx context.Context) ([]string, error) { return nil, fetchErr }
	sample := []string{"sample"}

	res, err := load(context.Background(), testApp(true), failing, sample)
	if err != nil {
		t.Fatalf("load() with fallback error = %v", err)
	}
	if res.Kind != loader.KindErrorFallback || len(res.Data) != 1 {
		t.Errorf("load() with fallback = %+v, want sample substitution", res)
	}

	if _, err := load(context.Background(), testApp(false), failing, sample); !errors.Is(err, fetchErr) {
		t.Errorf("load() without fallback error = %v, want the fetch error", err)
	}
}

func TestCommandWiring(t *testing.T) {
	cmds := map[string]bool{}
	for _, c := range []interface{ Name() string }{
		loginCmd(), logoutCmd(), documentsCmd(), medicationsCmd(), symptomsCmd(),
		readingsCmd(), notificationsCmd(), askCmd(), profileCmd(), dashboardCmd(),
		sandboxCmd(), versionCmd(),
	} {
		cmds[c.Name()] = true
	}
	for _, want := range []string{"login", "logout", "documents", "medications",
		"symptoms", "readings", "notifications", "ask", "profile", "dashboard",
		"sandbox", "version"} {
		if !cmds[want] {
			t.Errorf("missing command %q", want)
		}
	}
}
