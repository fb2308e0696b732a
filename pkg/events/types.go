package events

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of event flowing through the system.
type EventType string

const (
	CatalogLoaded       EventType = "catalog.loaded"
	CatalogReloaded     EventType = "catalog.reloaded"
	CatalogReloadFailed EventType = "catalog.reload_failed"
	SystemError         EventType = "error"
)

// Envelope is the standard event wrapper published to the event bus.
type Envelope struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Source    string            `json:"source"`
	Timestamp time.Time         `json:"timestamp"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// CatalogLoadedData is the payload for catalog.loaded and catalog.reloaded
// events.
type CatalogLoadedData struct {
	Source      string `json:"source"`
	Voices      int    `json:"voices"`
	Solutions   int    `json:"solutions"`
	GeneratedAt string `json:"generated_at"`
}

// CatalogReloadFailedData is the payload for catalog.reload_failed events.
// The service keeps serving the last good snapshot when a reload fails.
type CatalogReloadFailedData struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}
