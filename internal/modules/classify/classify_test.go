package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		{"table request", "genera un cuadro de documentos", IntentTable},
		{"table request uppercase", "GENERA UNA TABLA DE LOS ARCHIVOS SUBIDOS", IntentTable},
		{"table request english", "generate a report of uploaded documents", IntentTable},
		{"meta document count", "¿cuántos documentos hay?", IntentMeta},
		{"meta unaccented", "cuantas preguntas he hecho", IntentMeta},
		{"meta history", "muéstrame el historial", IntentMeta},
		{"content action overrides meta", "genera un resumen del historial", IntentContent},
		{"plain content", "¿cuál es el horario de atención?", IntentContent},
		{"content mentioning a code", "qué dice GAM-SIG-PR-021 sobre seguridad", IntentContent},
		{"empty", "", IntentContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "table", IntentTable.String())
	assert.Equal(t, "meta", IntentMeta.String())
	assert.Equal(t, "content", IntentContent.String())
}
