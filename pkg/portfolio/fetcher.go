package portfolio

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Fetch retrieves a portfolio document from a file or URL.
func Fetch(input string) (doc Document, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	doc, err = FetchWithContext(ctx, input)
	return doc, err
}

// FetchWithContext retrieves a portfolio document with context.
func FetchWithContext(ctx context.Context, input string) (doc Document, err error) {
	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		var data []byte
		var format Format
		data, format, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch portfolio from URL: %s", input)
			return doc, err
		}

		doc, err = DecodeDocument(data, format)
		if err != nil {
			err = errors.Wrapf(err, "failed to decode portfolio from URL: %s", input)
			return doc, err
		}
		return doc, err
	}

	doc, err = Load(input)
	return doc, err
}

// Load reads a portfolio document from a JSON or YAML file.
func Load(path string) (doc Document, err error) {
	var data []byte
	data, err = fetchFromFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch portfolio from file: %s", path)
		return doc, err
	}

	doc, err = DecodeDocument(data, FormatForPath(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to decode portfolio file: %s", path)
		return doc, err
	}

	return doc, err
}

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) (format Format) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		format = FormatJSON
	}
	return format
}

// fetchFromFile reads a document from disk.
func fetchFromFile(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = ErrEmptyInput
		return data, err
	}

	return data, err
}

// fetchFromURL retrieves a document over HTTP.
func fetchFromURL(ctx context.Context, urlStr string) (data []byte, format Format, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, format, err
	}

	req.Header.Set("User-Agent", "checkdisout/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, format, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, format, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, format, err
	}

	if len(data) == 0 {
		err = ErrEmptyInput
		return data, format, err
	}

	format = FormatForPath(req.URL.Path)
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "yaml") {
		format = FormatYAML
	}

	return data, format, err
}
