package thingspeak

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"ban/healthsense/internal/app/infra/telemetry"
)

func TestLatestEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/2574220/feeds.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "KEY" || r.URL.Query().Get("results") != "1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"channel":{"id":2574220},"feeds":[{"created_at":"2024-06-01T10:00:00Z","entry_id":7,"field1":"100","field2":"200","field3":"300","field4":"36.6","field5":"72"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "2574220", "KEY", time.Second)
	entry, err := c.LatestEntry(context.Background())
	if err != nil {
		t.Fatalf("LatestEntry() error = %v", err)
	}
	if entry.EntryID != 7 || entry.ChannelID != "2574220" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	hr, err := entry.Number("field5")
	if err != nil || hr != 72 {
		t.Fatalf("field5 = %v, %v", hr, err)
	}
	if c.Name() != SourceName {
		t.Fatalf("Name() = %q", c.Name())
	}
}

func TestLatestEntryErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "empty feeds", status: http.StatusOK, body: `{"channel":{},"feeds":[]}`, wantErr: telemetry.ErrNoReading},
		{name: "bad status", status: http.StatusBadRequest, body: `-1`, wantErr: telemetry.ErrUpstream},
		{name: "server error", status: http.StatusServiceUnavailable, body: `down`, wantErr: telemetry.ErrUpstream},
		{name: "bad json", status: http.StatusOK, body: `<html>`, wantErr: telemetry.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "1", "", time.Second).LatestEntry(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLatestEntryTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "1", "SECRETKEY", 20*time.Millisecond).LatestEntry(context.Background())
	if !errors.Is(err, telemetry.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	if strings.Contains(err.Error(), "SECRETKEY") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}

func TestLatestEntryRedactsEncodedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	const key = "AB+CD/EF="
	_, err := NewClient(baseURL, "2574220", key, time.Second).LatestEntry(context.Background())
	if !errors.Is(err, telemetry.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
	for _, leaked := range []string{key, url.QueryEscape(key), "api_key"} {
		if strings.Contains(err.Error(), leaked) {
			t.Fatalf("error leaks %q: %v", leaked, err)
		}
	}
	if !strings.Contains(err.Error(), "/channels/2574220/feeds.json") {
		t.Fatalf("error lost the endpoint: %v", err)
	}
}
