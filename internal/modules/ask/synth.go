package ask

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gamdel/core/internal/modules/docmeta"
)

const noDocumentsMessage = "No hay documentos cargados para este cliente."

const tableNameWidth = 60

// renderTable builds the plain-text document inventory returned for
// table requests, without calling the generative backend.
func renderTable(docs map[string]string) string {
	if len(docs) == 0 {
		return noDocumentsMessage
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("📊 CUADRO DE DOCUMENTOS SUBIDOS\n")
	b.WriteString(strings.Repeat("=", 100) + "\n")
	fmt.Fprintf(&b, "%-3s %-60s %-12s %-15s\n", "Nº", "Documento", "Versión", "Fecha")
	b.WriteString(strings.Repeat("-", 100) + "\n")

	for i, name := range names {
		meta := docmeta.Extract(name)
		version := meta.Version
		if version == "" {
			version = "N/A"
		}
		date := meta.Date
		if date == "" {
			date = "N/A"
		}
		display := name
		if len(display) > tableNameWidth {
			display = truncateAtRune(display, tableNameWidth-3) + "..."
		}
		fmt.Fprintf(&b, "%-3d %-60s %-12s %-15s\n", i+1, display, version, date)
	}

	b.WriteString(strings.Repeat("=", 100) + "\n")
	fmt.Fprintf(&b, "Total de documentos: %d\n", len(names))
	return b.String()
}

// truncateAtRune cuts s to at most n bytes without splitting a rune.
func truncateAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// renderSystemInfo answers meta questions about the loaded corpus.
func renderSystemInfo(docs map[string]string, questions int64, lastQuestion string) string {
	if len(docs) == 0 {
		return noDocumentsMessage
	}

	names := make([]string, 0, len(docs))
	totalChars := 0
	for name, text := range docs {
		names = append(names, name)
		totalChars += len(text)
	}
	sort.Strings(names)

	var list strings.Builder
	for _, name := range names {
		fmt.Fprintf(&list, "- %s\n", name)
	}

	var b strings.Builder
	b.WriteString("📊 INFORMACIÓN DEL SISTEMA\n\n")
	fmt.Fprintf(&b, "**Documentos Cargados:** %d\n", len(names))
	fmt.Fprintf(&b, "**Caracteres Totales:** %d\n", totalChars)
	fmt.Fprintf(&b, "**Preguntas Registradas:** %d\n", questions)
	if lastQuestion != "" {
		fmt.Fprintf(&b, "**Última Pregunta:** %s\n", lastQuestion)
	}
	b.WriteString("\n**Documentos:**\n")
	b.WriteString(strings.TrimRight(list.String(), "\n"))
	return b.String()
}
