package ask

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamdel/core/internal/models"
	"github.com/gamdel/core/internal/modules/documents"
	"github.com/gamdel/core/internal/modules/guard"
	"github.com/gamdel/core/internal/modules/resolver"
)

// fakeAnswerer captures the generation call and returns a canned answer.
type fakeAnswerer struct {
	answer  string
	err     error
	called  bool
	docName string
	docText string
}

func (f *fakeAnswerer) Answer(_ context.Context, docName, docText, _ string) (string, error) {
	f.called = true
	f.docName = docName
	f.docText = docText
	return f.answer, f.err
}

// fakeRecorder is an in-memory conversation log.
type fakeRecorder struct {
	entries []recordedEntry
}

type recordedEntry struct {
	tenant, question, answer string
	sources                  []string
}

func (f *fakeRecorder) Append(tenant, question, answer string, sources []string) error {
	f.entries = append(f.entries, recordedEntry{tenant, question, answer, sources})
	return nil
}

func (f *fakeRecorder) Recent(_ string, limit int) ([]models.ConversationModel, error) {
	var out []models.ConversationModel
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, models.ConversationModel{
			Tenant:   f.entries[i].tenant,
			Question: f.entries[i].question,
			Answer:   f.entries[i].answer,
			Sources:  f.entries[i].sources,
		})
	}
	return out, nil
}

func (f *fakeRecorder) CountQuestions(string) (int64, error) {
	return int64(len(f.entries)), nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(context.Context, string) (string, int, error) { return "", 0, nil }

func newTestService(t *testing.T, ans *fakeAnswerer, rec *fakeRecorder, contextLimit int) (*Service, *documents.Store) {
	t.Helper()
	store := documents.NewStore()
	docsSvc := documents.NewService(nil, store, stubExtractor{}, t.TempDir(), nil)
	res := resolver.New(-1, nil)
	return NewService(docsSvc, rec, res, ans, nil, contextLimit, nil), store
}

func TestAskTableBypassesGeneration(t *testing.T) {
	ans := &fakeAnswerer{answer: "never used"}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "Manual_v2.pdf", "contenido del manual de seguridad"))
	require.NoError(t, store.Put("acme", "Reglamento_2026-01-15.pdf", "contenido del reglamento interno"))

	res, err := svc.Ask(context.Background(), "acme", "genera un cuadro de documentos")
	require.NoError(t, err)

	assert.False(t, ans.called)
	assert.Contains(t, res.Answer, "CUADRO DE DOCUMENTOS")
	assert.Contains(t, res.Answer, "Manual_v2.pdf")
	assert.Contains(t, res.Answer, "Total de documentos: 2")
	assert.Equal(t, []string{models.SourceSystem}, res.Sources)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, []string{models.SourceSystem}, rec.entries[0].sources)
}

func TestAskTableNoDocuments(t *testing.T) {
	ans := &fakeAnswerer{}
	rec := &fakeRecorder{}
	svc, _ := newTestService(t, ans, rec, 8000)

	res, err := svc.Ask(context.Background(), "acme", "genera una tabla de documentos")
	require.NoError(t, err)
	assert.Equal(t, "No hay documentos cargados para este cliente.", res.Answer)
	assert.False(t, ans.called)
}

func TestAskMetaQuestion(t *testing.T) {
	ans := &fakeAnswerer{}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "Manual.pdf", "doce caracteres aquí"))

	res, err := svc.Ask(context.Background(), "acme", "¿cuántos documentos hay?")
	require.NoError(t, err)

	assert.False(t, ans.called)
	assert.Contains(t, res.Answer, "INFORMACIÓN DEL SISTEMA")
	assert.Contains(t, res.Answer, "**Documentos Cargados:** 1")
	assert.Contains(t, res.Answer, "- Manual.pdf")
	assert.Equal(t, []string{models.SourceSystem}, res.Sources)
}

func TestAskContentFlow(t *testing.T) {
	ans := &fakeAnswerer{answer: "El casco es obligatorio en toda la planta."}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "GAM-SIG-PR-021_v2.1.pdf", "uso obligatorio de casco en la planta"))

	res, err := svc.Ask(context.Background(), "acme", "qué exige GAM-SIG-PR-021 sobre el casco")
	require.NoError(t, err)

	assert.True(t, ans.called)
	assert.Equal(t, "GAM-SIG-PR-021_v2.1.pdf", ans.docName)
	assert.Equal(t, "El casco es obligatorio en toda la planta.", res.Answer)
	assert.Equal(t, []string{"GAM-SIG-PR-021_v2.1.pdf (v2.1)"}, res.Sources)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, []string{"GAM-SIG-PR-021_v2.1.pdf"}, rec.entries[0].sources)
}

func TestAskContentNoDocuments(t *testing.T) {
	ans := &fakeAnswerer{}
	rec := &fakeRecorder{}
	svc, _ := newTestService(t, ans, rec, 8000)

	_, err := svc.Ask(context.Background(), "acme", "¿cuál es el horario de atención?")
	assert.ErrorIs(t, err, resolver.ErrNoDocuments)
	assert.False(t, ans.called)
	assert.Empty(t, rec.entries)
}

func TestAskContentNoMatch(t *testing.T) {
	ans := &fakeAnswerer{}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "Manual.pdf", "contenido sobre seguridad industrial"))

	_, err := svc.Ask(context.Background(), "acme", "xylophone zeppelin quark")
	assert.ErrorIs(t, err, resolver.ErrNoMatch)
	assert.False(t, ans.called)
	assert.Empty(t, rec.entries)
}

func TestAskGuardReplacesHallucination(t *testing.T) {
	ans := &fakeAnswerer{answer: "Según DESPA-PG-001, el plazo es de 30 días."}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "Manual.pdf", "contenido sobre plazos administrativos"))

	res, err := svc.Ask(context.Background(), "acme", "dime los plazos administrativos del manual")
	require.NoError(t, err)
	assert.Equal(t, guard.Refusal, res.Answer)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, guard.Refusal, rec.entries[0].answer)
}

func TestAskContextLimit(t *testing.T) {
	ans := &fakeAnswerer{answer: "respuesta"}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 20)
	long := strings.Repeat("palabra casco seguridad ", 50)
	require.NoError(t, store.Put("acme", "Manual.pdf", long))

	_, err := svc.Ask(context.Background(), "acme", "manual")
	require.NoError(t, err)

	require.True(t, ans.called)
	assert.Len(t, ans.docText, 23) // 20 chars plus the ellipsis marker
	assert.True(t, strings.HasSuffix(ans.docText, "..."))
}

func TestAskContextLimitKeepsRunesIntact(t *testing.T) {
	ans := &fakeAnswerer{answer: "respuesta"}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 22)
	// 2-byte runes: byte 22 lands mid-rune, so the cut must back up.
	text := "manual " + strings.Repeat("á", 30)
	require.NoError(t, store.Put("acme", "Manual.pdf", text))

	_, err := svc.Ask(context.Background(), "acme", "manual")
	require.NoError(t, err)

	require.True(t, ans.called)
	assert.True(t, utf8.ValidString(ans.docText))
	assert.True(t, strings.HasSuffix(ans.docText, "..."))
	assert.Len(t, ans.docText, 24) // backed up to byte 21, plus the marker
}

func TestAskGenerationError(t *testing.T) {
	genErr := errors.New("upstream timeout")
	ans := &fakeAnswerer{err: genErr}
	rec := &fakeRecorder{}
	svc, store := newTestService(t, ans, rec, 8000)
	require.NoError(t, store.Put("acme", "Manual.pdf", "contenido del manual"))

	_, err := svc.Ask(context.Background(), "acme", "manual")
	assert.ErrorIs(t, err, genErr)
	assert.Empty(t, rec.entries)
}
