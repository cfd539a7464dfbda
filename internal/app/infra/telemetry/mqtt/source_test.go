package mqtt

import (
	"context"
	"errors"
	"testing"

	"ban/healthsense/internal/app/infra/telemetry"
	"ban/healthsense/pkg/logger"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func TestLatestEntryBeforeFirstMessage(t *testing.T) {
	s := NewSource(Options{Topic: "channels/1/subscribe"}, logger.NewNop())
	if _, err := s.LatestEntry(context.Background()); !errors.Is(err, telemetry.ErrNoReading) {
		t.Fatalf("error = %v, want ErrNoReading", err)
	}
	if s.opts.ClientID == "" {
		t.Fatal("client id not generated")
	}
}

func TestHandleMessageKeepsNewest(t *testing.T) {
	s := NewSource(Options{Topic: "t", ChannelID: "2574220"}, logger.NewNop())

	s.handleMessage(nil, &fakeMessage{topic: "t", payload: []byte(`{"entry_id":5,"field5":"80"}`)})
	s.handleMessage(nil, &fakeMessage{topic: "t", payload: []byte(`not json`)})
	s.handleMessage(nil, &fakeMessage{topic: "t", payload: []byte(`{"entry_id":3,"field5":"60"}`)})

	entry, err := s.LatestEntry(context.Background())
	if err != nil {
		t.Fatalf("LatestEntry() error = %v", err)
	}
	if entry.EntryID != 5 || entry.ChannelID != "2574220" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	s.handleMessage(nil, &fakeMessage{topic: "t", payload: []byte(`{"entry_id":6,"channel_id":99,"field5":"90"}`)})
	entry, _ = s.LatestEntry(context.Background())
	hr, err := entry.Number("field5")
	if err != nil || hr != 90 || entry.ChannelID != "99" {
		t.Fatalf("entry = %+v, hr = %v, err = %v", entry, hr, err)
	}
}
