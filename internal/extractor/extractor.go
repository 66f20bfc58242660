// Package extractor turns the manual PDF into a page-number → text map by
// shelling out to pdftotext. Extraction runs once per Extractor; the result
// is cached for the process lifetime.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// ErrNotConfigured is returned when no manual path is set.
var ErrNotConfigured = errors.New("no manual configured")

// pageSeparator is the form-feed marker pdftotext emits between pages.
const pageSeparator = "\f"

// Config holds extractor configuration.
type Config struct {
	Path string // path to the manual PDF
	Bin  string // pdftotext binary, defaults to "pdftotext"
}

// runFunc invokes the external extraction utility and returns its stdout.
// Swapped out in tests.
type runFunc func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Extractor wraps the pdftotext CLI with a build-once page cache. Safe for
// concurrent use; the first caller populates the cache, later callers get
// the cached map.
type Extractor struct {
	path string
	bin  string
	run  runFunc

	mu    sync.Mutex
	pages map[int]string
	built bool
}

// New creates an extractor for the given manual.
func New(config Config) *Extractor {
	bin := config.Bin
	if bin == "" {
		bin = "pdftotext"
	}
	return &Extractor{
		path: config.Path,
		bin:  bin,
		run:  runPdftotext,
	}
}

func runPdftotext(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %s: %w", bin, msg, err)
		}
		return nil, fmt.Errorf("%s: %w", bin, err)
	}
	return out, nil
}

// Pages extracts the manual page by page, requesting layout-preserving text.
// Pages whose trimmed text is empty are omitted, so the map is dense but not
// necessarily contiguous with the physical page numbers when the PDF has
// blank pages. The second call returns the cached map without re-running
// pdftotext.
func (e *Extractor) Pages(ctx context.Context) (map[int]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.built {
		return e.pages, nil
	}

	if e.path == "" {
		return nil, ErrNotConfigured
	}
	if _, err := os.Stat(e.path); err != nil {
		return nil, fmt.Errorf("manual not found at %s: %w", e.path, err)
	}

	out, err := e.run(ctx, e.bin, "-layout", e.path, "-")
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	pages := make(map[int]string)
	for i, raw := range strings.Split(string(out), pageSeparator) {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		pages[i+1] = text
	}

	e.pages = pages
	e.built = true
	slog.Debug("manual extracted", "path", e.path, "pages", len(pages))

	return pages, nil
}
