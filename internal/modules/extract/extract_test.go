package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for Runner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestExtractMultiPage(t *testing.T) {
	runner := &mockRunner{output: []byte("primera página\fsegunda página\f")}
	e := NewPDFExtractorWithRunner(runner)

	text, pages, err := e.Extract(context.Background(), "/tmp/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Contains(t, text, "--- Página 1 ---")
	assert.Contains(t, text, "primera página")
	assert.Contains(t, text, "--- Página 2 ---")
	assert.Contains(t, text, "segunda página")

	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "/tmp/doc.pdf", "-"}, runner.args)
}

func TestExtractSkipsEmptyPages(t *testing.T) {
	runner := &mockRunner{output: []byte("texto\f   \n\fúltima\f")}
	e := NewPDFExtractorWithRunner(runner)

	text, pages, err := e.Extract(context.Background(), "/tmp/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.NotContains(t, text, "--- Página 2 ---")
	assert.Contains(t, text, "--- Página 3 ---")
	assert.Contains(t, text, "última")
}

func TestExtractEmptyOutput(t *testing.T) {
	runner := &mockRunner{output: []byte("")}
	e := NewPDFExtractorWithRunner(runner)

	text, pages, err := e.Extract(context.Background(), "/tmp/scanned.pdf")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Zero(t, pages)
}

func TestExtractCommandFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	e := NewPDFExtractorWithRunner(runner)

	_, _, err := e.Extract(context.Background(), "/tmp/broken.pdf")
	assert.ErrorIs(t, err, ErrExtraction)
}
