package mdtelemetry

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ban/healthsense/internal/app/infra/telemetry"
)

type stubSource struct {
	entry *telemetry.FeedEntry
	err   error
}

func (s *stubSource) LatestEntry(ctx context.Context) (*telemetry.FeedEntry, error) {
	return s.entry, s.err
}

func (s *stubSource) Name() string { return "stub" }

func entry(t *testing.T, body string) *telemetry.FeedEntry {
	t.Helper()
	var e telemetry.FeedEntry
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	return &e
}

func TestLatestMapsFields(t *testing.T) {
	src := &stubSource{entry: entry(t, `{"channel_id":"9","entry_id":3,"field1":"-1200.9","field2":"18001","field3":"5","field4":"37.2","field5":"121.5"}`)}
	m := NewTelemetryModule(src, DefaultFieldMapping())

	r, err := m.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	want := []float64{121.5, 37.2, -1200, 18001, 5}
	if !reflect.DeepEqual(r.Features(), want) {
		t.Fatalf("Features() = %v, want %v", r.Features(), want)
	}
	if r.Source != "stub" || r.EntryID != 3 || r.ChannelID != "9" {
		t.Fatalf("unexpected reading: %+v", r)
	}
}

func TestLatestCustomMapping(t *testing.T) {
	src := &stubSource{entry: entry(t, `{"field6":"70","field7":"36","field8":"1","field1":"2","field2":"3"}`)}
	m := NewTelemetryModule(src, FieldMapping{HeartRate: "field6", BodyTemp: "field7", AccelX: "field8", AccelY: "field1", AccelZ: "field2"})

	r, err := m.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if !reflect.DeepEqual(r.Features(), []float64{70, 36, 1, 2, 3}) {
		t.Fatalf("Features() = %v", r.Features())
	}
}

func TestLatestInvalidField(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "missing heart rate", body: `{"field1":"1","field2":"2","field3":"3","field4":"36"}`, wantMsg: "heart_rate"},
		{name: "null temp", body: `{"field1":"1","field2":"2","field3":"3","field4":null,"field5":"80"}`, wantMsg: "body_temp"},
		{name: "text accel", body: `{"field1":"x","field2":"2","field3":"3","field4":"36","field5":"80"}`, wantMsg: "accelerometer_x"},
		{name: "nan accel", body: `{"field1":"1","field2":"NaN","field3":"3","field4":"36","field5":"80"}`, wantMsg: "accelerometer_y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTelemetryModule(&stubSource{entry: entry(t, tt.body)}, DefaultFieldMapping())
			_, err := m.Latest(context.Background())
			if !errors.Is(err, ErrInvalidField) {
				t.Fatalf("error = %v, want ErrInvalidField", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not name %s", err, tt.wantMsg)
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Feature != tt.wantMsg {
				t.Fatalf("error %v is not a FieldError for %s", err, tt.wantMsg)
			}
		})
	}
}

func TestLatestPassesSourceErrors(t *testing.T) {
	m := NewTelemetryModule(&stubSource{err: telemetry.ErrNoReading}, DefaultFieldMapping())
	if _, err := m.Latest(context.Background()); !errors.Is(err, telemetry.ErrNoReading) {
		t.Fatalf("error = %v, want ErrNoReading", err)
	}
}
