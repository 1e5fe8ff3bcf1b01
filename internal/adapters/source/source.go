// Package source fetches the raw tabular exports from disk or over HTTP.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBodyBytes caps an HTTP export body.
const DefaultMaxBodyBytes = 64 << 20

// Source yields the raw bytes of one named export.
type Source interface {
	Name() string
	// Location is the path or URL, for reports.
	Location() string
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads a local file.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a FileSource.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string     { return s.name }
func (s *FileSource) Location() string { return s.path }

// Fetch reads the file, honoring ctx cancellation before the read.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, s.name, err)
	}
	return b, nil
}

// HTTPSource downloads a URL with GET.
type HTTPSource struct {
	name   string
	url    string
	client *http.Client
	limit  int64
}

// NewHTTPSource creates an HTTPSource. A nil client uses http.DefaultClient.
func NewHTTPSource(name, rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{name: name, url: rawURL, client: client, limit: DefaultMaxBodyBytes}
}

// WithLimit sets the largest accepted body. Non-positive n keeps the default.
func (s *HTTPSource) WithLimit(n int64) *HTTPSource {
	if n > 0 {
		s.limit = n
	}
	return s
}

func (s *HTTPSource) Name() string     { return s.name }
func (s *HTTPSource) Location() string { return s.url }

// Fetch performs one GET. Non-2xx responses and bodies over the limit are
// errors; there are no retries.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, s.name, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: %s: %w %d", ErrUnavailable, s.name, ErrHTTPStatus, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, s.limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, s.name, err)
	}
	if int64(len(b)) > s.limit {
		return nil, fmt.Errorf("%w: %s: %w (%d bytes)", ErrUnavailable, s.name, ErrTooLarge, s.limit)
	}
	return b, nil
}

// disabled stands in for a source with no configured location.
type disabled struct{ name string }

func (d disabled) Name() string     { return d.name }
func (d disabled) Location() string { return "" }
func (d disabled) Fetch(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrDisabled, d.name)
}

// Resolve maps source names to sources. A non-empty dataDir yields file
// sources; otherwise baseURL yields HTTP sources. Names with an empty path,
// or with neither root set, are disabled.
func Resolve(names []string, paths map[string]string, dataDir, baseURL string, client *http.Client) []Source {
	out := make([]Source, 0, len(names))
	for _, name := range names {
		p := strings.TrimSpace(paths[name])
		switch {
		case p == "":
			out = append(out, disabled{name: name})
		case isURL(p):
			out = append(out, NewHTTPSource(name, p, client))
		case dataDir != "":
			out = append(out, NewFileSource(name, filepath.Join(dataDir, filepath.FromSlash(p))))
		case baseURL != "":
			u, err := url.JoinPath(baseURL, p)
			if err != nil {
				out = append(out, disabled{name: name})
				continue
			}
			out = append(out, NewHTTPSource(name, u, client))
		default:
			out = append(out, disabled{name: name})
		}
	}
	return out
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
