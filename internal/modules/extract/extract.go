// Package extract turns uploaded files into plain text. PDF extraction
// shells out to poppler's pdftotext; plain-text sidecars pass through
// unchanged. Extraction is an external, per-file concern: one bad file never
// fails a batch.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrExtraction wraps any failure to get text out of a single file.
var ErrExtraction = errors.New("text extraction failed")

// TextExtractor is the contract the document store consumes.
type TextExtractor interface {
	// Extract returns the plain text and page count for the file at path.
	// Empty text with a nil error is a legal result (e.g. a scanned PDF).
	Extract(ctx context.Context, path string) (text string, pages int, err error)
}

// Runner abstracts subprocess execution so tests can fake pdftotext.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDFExtractor extracts PDF text via pdftotext.
type PDFExtractor struct {
	runner Runner
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{runner: execRunner{}}
}

// NewPDFExtractorWithRunner is for tests.
func NewPDFExtractorWithRunner(r Runner) *PDFExtractor {
	return &PDFExtractor{runner: r}
}

// Extract runs pdftotext and rebuilds the text with per-page markers.
// pdftotext separates pages with form feeds; pages that yield no text are
// skipped rather than failing the document.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, int, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", 0, fmt.Errorf("%w: pdftotext %s: %v", ErrExtraction, path, err)
	}

	pages := strings.Split(string(out), "\f")
	// pdftotext emits a trailing form feed after the last page
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}

	var b strings.Builder
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Página %d ---\n", i+1)
		b.WriteString(page)
	}
	return b.String(), len(pages), nil
}

// InstallInstructions describes how to get the pdftotext binary.
func InstallInstructions() string {
	return "pdftotext is required for PDF uploads: `brew install poppler` (macOS) or `apt install poppler-utils` (Debian/Ubuntu)"
}
