package payload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const samplePayload = `{
	"generated_at": "2026-08-01T00:00:00Z",
	"summary": {"voices": 2},
	"facets": {
		"platforms": {"online": 1, "windows": 1},
		"genders": {"Female": 2}
	},
	"voices": [
		{
			"voice_key": "azure/en-US/aria",
			"id": "aria",
			"name": "Aria",
			"mode": "online",
			"gender": "Female",
			"platform": "online",
			"runtime": "Azure Speech API",
			"provider": "Microsoft",
			"language_codes": ["en-US"],
			"latitude": 38.9,
			"longitude": -77.0
		},
		{
			"voice_key": "sapi/en-GB/hazel",
			"id": "hazel",
			"name": "Hazel",
			"mode": "offline",
			"platform": "windows"
		}
	],
	"solutions": [
		{"id": "talker", "name": "Talker", "category": "aac", "platforms": ["ios"]}
	],
	"solution_runtime_support": [
		{"solution_id": "talker", "runtime": "Azure Speech API", "support_level": "native"}
	],
	"solution_provider_support": []
}`

func TestDecodeDefaulting(t *testing.T) {
	doc, err := Decode([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(doc.Voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(doc.Voices))
	}
	aria, hazel := doc.Voices[0], doc.Voices[1]
	if aria.Latitude == nil || *aria.Latitude != 38.9 {
		t.Errorf("aria latitude = %v, want 38.9", aria.Latitude)
	}
	// Missing fields default locally instead of failing the document.
	if hazel.Latitude != nil || hazel.Longitude != nil {
		t.Error("absent coordinates must decode as nil")
	}
	if hazel.Gender != "" || hazel.Runtime != "" {
		t.Errorf("absent strings must decode empty, got %q/%q", hazel.Gender, hazel.Runtime)
	}
	if doc.GeneratedAt != "2026-08-01T00:00:00Z" {
		t.Errorf("generated_at = %q", doc.GeneratedAt)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(doc.Voices) != 2 {
		t.Errorf("got %d voices, want 2", len(doc.Voices))
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, 5*time.Second)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestLoaderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voices.json")
	if err := os.WriteFile(path, []byte(samplePayload), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path, "", 0)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := l.Catalog()
	if c == nil {
		t.Fatal("no snapshot after Load")
	}
	if len(c.Voices()) != 2 || len(c.Solutions()) != 1 {
		t.Errorf("snapshot has %d voices, %d solutions", len(c.Voices()), len(c.Solutions()))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.json"), "", 0)
	if err := l.Load(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if l.Catalog() != nil {
		t.Error("snapshot must stay nil after a failed first load")
	}
}

func TestLoaderOverlay(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "voices.json")
	overlayPath := filepath.Join(dir, "overlay.yaml")
	if err := os.WriteFile(payloadPath, []byte(samplePayload), 0o644); err != nil {
		t.Fatal(err)
	}
	overlay := `
solutions:
  - id: extra
    name: Extra Reader
    vendor: ACME
    category: screenreader
    platforms: [windows]
  - id: talker
    name: Talker Renamed
    vendor: ACME
    category: aac
    platforms: [ios, android]
runtime_support:
  - solution_id: extra
    runtime: SAPI5
    support_level: compatible
    requires_enrollment: true
provider_support:
  - solution_id: extra
    provider: Acapela
    support_level: possible
    voice_origin: banked
`
	if err := os.WriteFile(overlayPath, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(payloadPath, overlayPath, 0)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := l.Catalog()

	if len(c.Solutions()) != 2 {
		t.Fatalf("got %d solutions, want 2", len(c.Solutions()))
	}
	if got := c.Solution("talker"); got == nil || got.Name != "Talker Renamed" {
		t.Errorf("overlay must replace payload solution by ID, got %+v", got)
	}
	if got := c.Solution("extra"); got == nil || got.Category != "screenreader" {
		t.Errorf("overlay solution missing, got %+v", got)
	}
	doc := c.Document()
	if len(doc.RuntimeSupport) != 2 || len(doc.ProviderSupport) != 1 {
		t.Errorf("rules = %d runtime, %d provider; want 2, 1",
			len(doc.RuntimeSupport), len(doc.ProviderSupport))
	}
}

func TestWatchAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voices.json")
	if err := os.WriteFile(path, []byte(samplePayload), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path, "", 0)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	reloaded := make(chan error, 1)
	l.OnReload = func(err error) {
		select {
		case reloaded <- err:
		default:
		}
	}

	done := make(chan struct{})
	go func() {
		if err := l.WatchAndReload(context.Background(), done); err != nil {
			t.Errorf("WatchAndReload: %v", err)
		}
	}()
	defer close(done)

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	updated := `{"generated_at": "2026-08-02T00:00:00Z", "voices": [], "facets": {}}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if got := l.Catalog().GeneratedAt(); got != "2026-08-02T00:00:00Z" {
		t.Errorf("snapshot not swapped, generated_at = %q", got)
	}
}
