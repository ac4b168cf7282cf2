package ask

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, noDocumentsMessage, renderTable(nil))
	assert.Equal(t, noDocumentsMessage, renderTable(map[string]string{}))
}

func TestRenderTableColumns(t *testing.T) {
	out := renderTable(map[string]string{
		"Reglamento_v2.1_2026-01-15.pdf": "texto",
		"Anexo.pdf":                      "texto",
	})

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)

	// Rows are numbered in sorted-name order.
	assert.Contains(t, out, "1   Anexo.pdf")
	assert.Contains(t, out, "2   Reglamento_v2.1_2026-01-15.pdf")
	assert.Contains(t, out, "2.1")
	assert.Contains(t, out, "2026-01-15")
	assert.Contains(t, out, "Total de documentos: 2")
}

func TestRenderTableMissingMetadata(t *testing.T) {
	out := renderTable(map[string]string{"plain.pdf": "texto"})
	assert.Contains(t, out, "N/A")
}

func TestRenderTableTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 70) + ".pdf"
	out := renderTable(map[string]string{long: "texto"})
	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", 57)+"...")
}

func TestRenderTableTruncationKeepsRunesIntact(t *testing.T) {
	// An accented rune straddling the cut must not leave a broken sequence.
	long := strings.Repeat("á", 40) + ".pdf" // 84 bytes
	out := renderTable(map[string]string{long: "texto"})
	assert.True(t, utf8.ValidString(out))
	assert.NotContains(t, out, string(utf8.RuneError))
}

func TestTruncateAtRune(t *testing.T) {
	assert.Equal(t, "abc", truncateAtRune("abc", 10))
	assert.Equal(t, "abc", truncateAtRune("abcdef", 3))
	// "á" is 2 bytes; cutting at byte 3 would split the second rune.
	assert.Equal(t, "á", truncateAtRune("áá", 3))
	assert.Equal(t, "", truncateAtRune("á", 1))
}

func TestRenderSystemInfo(t *testing.T) {
	out := renderSystemInfo(map[string]string{
		"a.pdf": "12345",
		"b.pdf": "1234567890",
	}, 7, "¿cuál es el horario?")

	assert.Contains(t, out, "**Documentos Cargados:** 2")
	assert.Contains(t, out, "**Caracteres Totales:** 15")
	assert.Contains(t, out, "**Preguntas Registradas:** 7")
	assert.Contains(t, out, "**Última Pregunta:** ¿cuál es el horario?")
	assert.Contains(t, out, "- a.pdf")
	assert.Contains(t, out, "- b.pdf")
}

func TestRenderSystemInfoNoHistory(t *testing.T) {
	out := renderSystemInfo(map[string]string{"a.pdf": "texto"}, 0, "")
	assert.NotContains(t, out, "Última Pregunta")
}

func TestRenderSystemInfoEmpty(t *testing.T) {
	assert.Equal(t, noDocumentsMessage, renderSystemInfo(nil, 0, ""))
}
