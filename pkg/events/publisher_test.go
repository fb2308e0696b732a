package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEnvelopeSerialization(t *testing.T) {
	data := &CatalogLoadedData{
		Source:      "https://example.org/voices-site.json",
		Voices:      1234,
		Solutions:   17,
		GeneratedAt: "2026-08-01T00:00:00Z",
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}

	env := Envelope{
		ID:        "test-id",
		Type:      CatalogLoaded,
		Source:    "catalog",
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}

	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	var decoded Envelope
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	if decoded.Type != CatalogLoaded {
		t.Errorf("type = %q, want %q", decoded.Type, CatalogLoaded)
	}
	if decoded.Source != "catalog" {
		t.Errorf("source = %q, want %q", decoded.Source, "catalog")
	}

	var payload CatalogLoadedData
	if err := json.Unmarshal(decoded.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Voices != 1234 {
		t.Errorf("voices = %d, want 1234", payload.Voices)
	}
}

func TestEventTypeConstants(t *testing.T) {
	types := []EventType{
		CatalogLoaded, CatalogReloaded, CatalogReloadFailed, SystemError,
	}

	seen := make(map[EventType]bool)
	for _, et := range types {
		if et == "" {
			t.Error("empty event type constant")
		}
		if seen[et] {
			t.Errorf("duplicate event type: %q", et)
		}
		seen[et] = true
	}
}

func TestLocalSubscription(t *testing.T) {
	p := NewPublisher(nil, "catalog", "")

	ch := p.Subscribe("test", 4)
	defer p.Unsubscribe("test")

	if err := p.Emit(context.Background(), CatalogReloaded, &CatalogLoadedData{Voices: 1}); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	select {
	case env := <-ch:
		if env.Type != CatalogReloaded {
			t.Errorf("type = %q, want %q", env.Type, CatalogReloaded)
		}
		if env.ID == "" {
			t.Error("envelope must carry a generated ID")
		}
	case <-time.After(time.Second):
		t.Fatal("no envelope delivered to local subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	p := NewPublisher(nil, "catalog", "")
	ch := p.Subscribe("gone", 1)
	p.Unsubscribe("gone")

	if _, open := <-ch; open {
		t.Error("channel must be closed after Unsubscribe")
	}

	// Emitting after unsubscribe must not panic or block.
	if err := p.Emit(context.Background(), SystemError, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}
