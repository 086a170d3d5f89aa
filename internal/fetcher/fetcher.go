package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FetchError reports an unreachable document URL or a non-success status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch document %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch document %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher downloads documents into transient files.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the document at url into a temp file and returns its path
// together with a cleanup func that removes the file. The caller must invoke
// cleanup on every exit path.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("docqa-%s.pdf", uuid.NewString()))
	out, err := os.Create(path)
	if err != nil {
		return "", nil, &FetchError{URL: url, Err: err}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", nil, &FetchError{URL: url, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", nil, &FetchError{URL: url, Err: err}
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error removing temp document")
		}
	}
	return path, cleanup, nil
}
