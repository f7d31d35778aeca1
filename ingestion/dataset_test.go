package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadDataset(t *testing.T) {
	path := writeDataset(t, `{"code": "E11.9", "description": "Type 2 diabetes mellitus without complications"}

{"code": "I10", "description": "Essential (primary) hypertension", "synonyms": ["high blood pressure"]}
`)

	entries, fingerprint, err := ReadDataset(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, fingerprint)

	assert.Equal(t, "E11.9", entries[0].Code)
	assert.Equal(t, "Type 2 diabetes mellitus without complications", entries[0].Description)
	assert.Empty(t, entries[0].Synonyms)

	assert.Equal(t, "I10", entries[1].Code)
	assert.Equal(t, []string{"high blood pressure"}, entries[1].Synonyms)
}

func TestReadDataset_MalformedLine(t *testing.T) {
	path := writeDataset(t, `{"code": "E11.9", "description": "ok"}
{not json}
`)

	_, _, err := ReadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadDataset_MissingFile(t *testing.T) {
	_, _, err := ReadDataset(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint([]byte("same contents"))
	b := Fingerprint([]byte("same contents"))
	c := Fingerprint([]byte("different contents"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32) // 16 bytes hex encoded
}

func TestEmbeddingText(t *testing.T) {
	plain := DatasetEntry{Code: "I10", Description: "Essential hypertension"}
	assert.Equal(t, "Essential hypertension", plain.EmbeddingText())

	enriched := DatasetEntry{
		Code:        "I10",
		Description: "Essential hypertension",
		Synonyms:    []string{"high blood pressure", "HTN"},
	}
	assert.Equal(t, "Essential hypertension; high blood pressure; HTN", enriched.EmbeddingText())
}
