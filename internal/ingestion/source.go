package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/errors"
)

// Source is a fetchable text resource such as loc.csv or projects.json.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a resource from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.NetworkErrorf(err, "open %s", s.Path)
	}
	return f, nil
}

// HTTPSource fetches a resource over HTTP. A non-2xx response is a fetch
// failure.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.NetworkErrorf(err, "build request for %s", s.URL)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NetworkErrorf(err, "fetch %s", s.URL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.NetworkErrorf(fmt.Errorf("status %s", resp.Status), "fetch %s", s.URL)
	}

	return resp.Body, nil
}

// NewSource picks an HTTP or file source based on the location's scheme.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}
