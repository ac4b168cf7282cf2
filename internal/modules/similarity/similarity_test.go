package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() map[string]string {
	return map[string]string{
		"safety.pdf":   "procedimiento seguridad industrial casco obligatorio zona trabajo riesgo",
		"payroll.pdf":  "nómina salarios pago mensual empleados banco transferencia",
		"vacation.pdf": "vacaciones solicitud días feriados descanso empleados calendario",
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	assert.Nil(t, Build(nil))
	assert.Nil(t, Build(map[string]string{}))
}

func TestBuildStopwordOnlyCorpus(t *testing.T) {
	// Every token is a stopword, so no usable vocabulary remains.
	ix := Build(map[string]string{"a.pdf": "el la de con para the and of"})
	assert.Nil(t, ix)
}

func TestNilIndexIsSafe(t *testing.T) {
	var ix *Index
	assert.Nil(t, ix.Query("anything"))
	assert.Equal(t, 0, ix.Len())
}

func TestQueryRanksMatchingDocumentFirst(t *testing.T) {
	ix := Build(sampleDocs())
	require.NotNil(t, ix)
	require.Equal(t, 3, ix.Len())

	ranked := ix.Query("procedimiento de seguridad y casco")
	require.Len(t, ranked, 3)
	assert.Equal(t, "safety.pdf", ranked[0].Name)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestQueryZeroSignal(t *testing.T) {
	ix := Build(sampleDocs())
	require.NotNil(t, ix)

	ranked := ix.Query("xylophone zeppelin quark")
	require.Len(t, ranked, 3)
	for _, s := range ranked {
		assert.Zero(t, s.Score)
	}
	// Zero scores tie; order falls back to name ascending.
	assert.Equal(t, "payroll.pdf", ranked[0].Name)
	assert.Equal(t, "safety.pdf", ranked[1].Name)
	assert.Equal(t, "vacation.pdf", ranked[2].Name)
}

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(sampleDocs())
	b := Build(sampleDocs())
	require.NotNil(t, a)
	require.NotNil(t, b)

	query := "pago de salarios empleados"
	ra := a.Query(query)
	rb := b.Query(query)
	require.Equal(t, len(ra), len(rb))
	for i := range ra {
		assert.Equal(t, ra[i].Name, rb[i].Name)
		assert.InDelta(t, ra[i].Score, rb[i].Score, 1e-12)
	}
}

func TestQueryIsIdempotent(t *testing.T) {
	ix := Build(sampleDocs())
	require.NotNil(t, ix)

	first := ix.Query("vacaciones empleados")
	second := ix.Query("vacaciones empleados")
	assert.Equal(t, first, second)
}

func TestScoresAreBoundedCosines(t *testing.T) {
	ix := Build(sampleDocs())
	require.NotNil(t, ix)

	for _, s := range ix.Query("seguridad nómina vacaciones") {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0+1e-9)
	}
}

func TestQueryIdenticalToDocumentScoresHighest(t *testing.T) {
	docs := sampleDocs()
	ix := Build(docs)
	require.NotNil(t, ix)

	ranked := ix.Query(docs["payroll.pdf"])
	require.NotEmpty(t, ranked)
	assert.Equal(t, "payroll.pdf", ranked[0].Name)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}
