package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jmylchreest/condense/internal/logger"
)

// StdinSource names standard input as a source.
const StdinSource = "-"

// Load reads HTML from source: "-" for stdin, an http(s) URL through f, or
// a local file path. Any other URL scheme yields ErrUnsupportedScheme.
func Load(ctx context.Context, source string, stdin io.Reader, f Fetcher, opts Options) (Content, error) {
	switch {
	case source == StdinSource:
		return readAll("stdin", stdin)
	case isRemote(source):
		if f == nil {
			return Content{URL: source}, fmt.Errorf("load %s: no fetcher configured", source)
		}
		logger.InfoContext(ctx, "fetching", "url", source, "fetcher", f.Type())
		return f.Fetch(ctx, source, opts)
	case hasScheme(source):
		return Content{URL: source}, fmt.Errorf("load %s: %w", source, ErrUnsupportedScheme)
	}

	file, err := os.Open(source)
	if err != nil {
		return Content{URL: source}, fmt.Errorf("open %s: %w", source, err)
	}
	defer file.Close()
	return readAll(source, file)
}

func readAll(name string, r io.Reader) (Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Content{URL: name}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Content{URL: name}, fmt.Errorf("read %s: %w", name, ErrEmptyInput)
	}
	html := string(data)
	return Content{
		URL:       name,
		HTML:      html,
		Title:     pageTitle(html),
		FetchedAt: time.Now(),
	}, nil
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// hasScheme reports whether source looks like a URL rather than a path.
// Single-letter schemes are treated as Windows drive letters.
func hasScheme(source string) bool {
	u, err := url.Parse(source)
	return err == nil && len(u.Scheme) > 1
}

// checkScheme rejects anything but absolute http(s) URLs.
func checkScheme(rawURL string) error {
	if !isRemote(rawURL) {
		return fmt.Errorf("%q: %w", rawURL, ErrUnsupportedScheme)
	}
	return nil
}
