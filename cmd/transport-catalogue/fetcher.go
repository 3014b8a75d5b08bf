package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// fetcher loads a GTFS archive from an HTTP URL or a local path.
type fetcher struct {
	httpClient *http.Client
}

func newFetcher() *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// fetch returns the raw archive bytes behind urlOrPath.
func (f *fetcher) fetch(urlOrPath string) ([]byte, error) {
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	resp, err := f.httpClient.Get(urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}
	return io.ReadAll(resp.Body)
}
