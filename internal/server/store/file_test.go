package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfold/planfold/internal/common"
)

type testDoc struct {
	Items []string `json:"items"`
	Notes []string `json:"notes"`
}

func newTestDoc() *testDoc {
	return &testDoc{Items: []string{}, Notes: []string{}}
}

func normalizeTestDoc(d *testDoc) {
	if d.Items == nil {
		d.Items = []string{}
	}
	if d.Notes == nil {
		d.Notes = []string{}
	}
}

func TestOpen_CreatesFileAndParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "doc.json")

	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "file should exist after Open")

	assert.Empty(t, f.Data().Items)

	// content on disk is the initial shape
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotNil(t, doc.Items)
}

func TestOpen_LoadsExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":["a","b"],"notes":[]}`), 0o600))

	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Data().Items)
}

func TestOpen_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items": [`), 0o600))

	_, err := Open(path, newTestDoc, normalizeTestDoc)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStoreFormat)
}

func TestOpen_HealsMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	// valid JSON written before the notes collection existed
	require.NoError(t, os.WriteFile(path, []byte(`{"items":["x"]}`), 0o600))

	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, f.Data().Items)
	assert.NotNil(t, f.Data().Notes)
	assert.Empty(t, f.Data().Notes)
}

func TestWrite_SequentialWritesReadBackExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		f.Data().Items = append(f.Data().Items, fmt.Sprintf("item-%d", i))
		require.NoError(t, f.Write())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc testDoc
		require.NoError(t, json.Unmarshal(raw, &doc), "on-disk document must always be complete JSON")
		assert.Len(t, doc.Items, i+1)
	}
}

func TestWrite_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)
	require.NoError(t, f.Write())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive a successful write")
}

func TestWrite_FailureLeavesPriorContentUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	f, err := Open(path, newTestDoc, normalizeTestDoc)
	require.NoError(t, err)
	f.Data().Items = []string{"committed"}
	require.NoError(t, f.Write())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// occupy the temp slot with a directory so the temp write fails
	require.NoError(t, os.Mkdir(path+".tmp", 0o750))
	defer os.Remove(path + ".tmp")

	f.Data().Items = append(f.Data().Items, "never-lands")
	err = f.Write()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStoreIO)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed write must not change on-disk content")
}
