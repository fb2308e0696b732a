// Package payload loads the voice-catalog payload document and builds the
// immutable catalog snapshot the query engine works on. The payload is
// fetched exactly once per source; there is no retry or backoff — an
// unavailable payload is terminal for the caller.
package payload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voiceatlas/voiceatlas/pkg/catalog"
)

// ErrUnavailable marks the terminal failure class: the payload could not
// be fetched or returned a non-success status.
var ErrUnavailable = errors.New("payload unavailable")

// maxPayloadSize caps how much of the payload body is read (64 MiB).
const maxPayloadSize = 64 << 20

// Fetch performs the single payload GET and decodes the document.
func Fetch(ctx context.Context, url string, timeout time.Duration) (*catalog.Document, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("payload request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %q: %v", ErrUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch %q: status %d", ErrUnavailable, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrUnavailable, url, err)
	}
	return Decode(data)
}

// Decode parses a payload document. Individual records tolerate missing
// fields (absent strings decode empty, absent booleans false, absent geo
// coordinates nil); only a structurally broken document is an error.
func Decode(data []byte) (*catalog.Document, error) {
	var doc catalog.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if doc.Facets == nil {
		doc.Facets = map[string]map[string]int{}
	}
	return &doc, nil
}
