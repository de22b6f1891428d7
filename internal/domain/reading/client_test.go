package reading

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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
		if r.URL.Path != "/api/health_readings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("type") != TypeGlucose {
			t.Errorf("type = %q", r.URL.Query().Get("type"))
		}
		json.NewEncoder(w).Encode(pagination.Page[Reading]{Data: Sample()[2:], Total: 1})
	})

	readings, total, err := c.List(context.Background(), Filter{Type: TypeGlucose})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(readings) != 1 || total != 1 {
		t.Errorf("List() = %d readings, total %d", len(readings), total)
	}
}

func TestCreateBloodPressureRequiresPair(t *testing.T) {
	c := NewClient(rest.New("http://unused", token.NewMemStore("t")))

	err := c.Create(context.Background(), &Reading{Type: TypeBloodPressure, Systolic: intp(120)})
	if err == nil {
		t.Error("expected error for missing diastolic")
	}
	err = c.Create(context.Background(), &Reading{Type: TypeHeartRate})
	if err == nil {
		t.Error("expected error for missing value")
	}
	err = c.Create(context.Background(), &Reading{Type: "mood"})
	if err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestCreateDefaultsUnit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in Reading
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatal(err)
		}
		if in.Unit != "bpm" {
			t.Errorf("posted unit = %q, want bpm default", in.Unit)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	})

	r := &Reading{Type: TypeHeartRate, Value: floatp(71)}
	if err := c.Create(context.Background(), r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		r    Reading
		want string
	}{
		{"blood pressure", Reading{Type: TypeBloodPressure, Systolic: intp(120), Diastolic: intp(80), Unit: "mmHg"}, "120/80 mmHg"},
		{"whole number", Reading{Type: TypeHeartRate, Value: floatp(72), Unit: "bpm"}, "72 bpm"},
		{"fractional", Reading{Type: TypeTemperature, Value: floatp(37.4), Unit: "°C"}, "37.4 °C"},
		{"default unit", Reading{Type: TypeSteps, Value: floatp(8200)}, "8200 steps"},
		{"missing value", Reading{Type: TypeGlucose}, "—"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.FormatValue(); got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
