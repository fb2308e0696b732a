package payload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/voiceatlas/voiceatlas/pkg/catalog"
)

// Loader resolves a payload source (HTTP(S) URL or local file), builds the
// catalog snapshot, and for file sources can hot-swap the snapshot when
// the payload or overlay file changes. A failed reload keeps the last good
// snapshot.
type Loader struct {
	source      string
	overlayPath string
	timeout     time.Duration

	// OnReload, when set, is called after every reload attempt triggered
	// by the watcher with the reload error (nil on success).
	OnReload func(err error)

	mu       sync.RWMutex
	snapshot *catalog.Catalog
}

// NewLoader creates a loader for the given source. overlayPath is optional.
func NewLoader(source, overlayPath string, timeout time.Duration) *Loader {
	return &Loader{source: source, overlayPath: overlayPath, timeout: timeout}
}

// Load fetches or reads the payload, applies the overlay, and installs the
// snapshot. The first call decides whether the service can start at all;
// later calls replace the snapshot atomically.
func (l *Loader) Load(ctx context.Context) error {
	doc, err := l.read(ctx)
	if err != nil {
		return err
	}

	if l.overlayPath != "" {
		o, err := LoadOverlay(l.overlayPath)
		if err != nil {
			return err
		}
		o.Apply(doc)
	}

	snap, err := catalog.New(doc)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.snapshot = snap
	l.mu.Unlock()

	slog.Info("payload loaded",
		slog.String("source", l.source),
		slog.Int("voices", len(doc.Voices)),
		slog.Int("solutions", len(doc.Solutions)),
		slog.String("generated_at", doc.GeneratedAt),
	)
	return nil
}

// Catalog returns the current snapshot, or nil before the first Load.
func (l *Loader) Catalog() *catalog.Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

func (l *Loader) read(ctx context.Context) (*catalog.Document, error) {
	if remote(l.source) {
		return Fetch(ctx, l.source, l.timeout)
	}
	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrUnavailable, l.source, err)
	}
	return Decode(data)
}

func remote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// WatchAndReload watches a file-based payload (and overlay, if any) and
// reloads on write or create events. Remote sources are fetched once and
// never watched. Blocks until done is closed.
func (l *Loader) WatchAndReload(ctx context.Context, done <-chan struct{}) error {
	if remote(l.source) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories, not files: editors replace files on save and a
	// file watch dies with the old inode.
	dirs := map[string]struct{}{filepath.Dir(l.source): {}}
	if l.overlayPath != "" {
		dirs[filepath.Dir(l.overlayPath)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch dir %q: %w", dir, err)
		}
	}

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !l.watchedFile(event.Name) {
				continue
			}
			err := l.Load(ctx)
			if err != nil {
				slog.Warn("payload reload failed; keeping last snapshot",
					slog.String("file", event.Name),
					slog.String("error", err.Error()),
				)
			}
			if l.OnReload != nil {
				l.OnReload(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (l *Loader) watchedFile(name string) bool {
	if filepath.Clean(name) == filepath.Clean(l.source) {
		return true
	}
	return l.overlayPath != "" && filepath.Clean(name) == filepath.Clean(l.overlayPath)
}
