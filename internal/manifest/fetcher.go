// Package manifest discovers ingestible documents from a static-asset host:
// a JSON manifest lists file names, each fetched individually over HTTP.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ManifestPath is the well-known path of the discovery manifest, relative to
// the host base URL.
const ManifestPath = "documents/manifest.json"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 15 * time.Second

// FetchedFile is one discovered document's raw bytes.
type FetchedFile struct {
	Name string
	Data []byte
}

// Fetcher retrieves the manifest and the files it names. Transient failures
// are retried with exponential backoff; a host that never answers degrades to
// an empty discovery rather than an error.
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher for the given base URL (scheme and host,
// optionally a path prefix).
func NewFetcher(baseURL string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
}

// ListDocuments fetches the manifest and returns the file names it lists.
// Unreachable hosts, non-2xx responses and malformed or non-array bodies all
// degrade to an empty list with a nil error: discovery failure is a soft
// state, not a crash.
func (f *Fetcher) ListDocuments(ctx context.Context) []string {
	body, err := f.get(ctx, f.baseURL+"/"+ManifestPath)
	if err != nil {
		f.logger.Warn("manifest unavailable, treating as empty discovery", "error", err)
		return nil
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		f.logger.Warn("manifest is not a JSON array, treating as empty discovery", "error", err)
		return nil
	}

	f.logger.Info("discovered documents", "count", len(names))
	return names
}

// FetchDocument retrieves one named file. The name is percent-encoded into
// the URL path.
func (f *Fetcher) FetchDocument(ctx context.Context, name string) (*FetchedFile, error) {
	u := f.baseURL + "/documents/" + url.PathEscape(name)
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return &FetchedFile{Name: name, Data: body}, nil
}

// FetchAll discovers and downloads every manifest entry. A file that fails to
// download is skipped and logged, never fatal to the batch.
func (f *Fetcher) FetchAll(ctx context.Context) []FetchedFile {
	names := f.ListDocuments(ctx)

	files := make([]FetchedFile, 0, len(names))
	for _, name := range names {
		file, err := f.FetchDocument(ctx, name)
		if err != nil {
			f.logger.Warn("skipping undownloadable file", "file", name, "error", err)
			continue
		}
		files = append(files, *file)
	}
	return files
}

// get performs a GET with retry on transport errors and 5xx responses.
// Non-success status codes are returned as errors; 4xx is permanent.
func (f *Fetcher) get(ctx context.Context, u string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return err // transport errors are retried
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %s", resp.Status)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
