package text

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Atsmon/seek-scraper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExportWritesChapterTree(t *testing.T) {
	book := model.NewBook()
	book.Add(&model.Chapter{URL: "u1", Name: "0.1.O", Arc: "Hack", Text: "First chapter text."})
	book.Add(&model.Chapter{URL: "u2", Name: "0.2.O", Arc: "Hack", Text: "Second chapter text."})
	book.Add(&model.Chapter{URL: "u3", Name: "1.1", Arc: "Trace", Text: "Third chapter text."})

	dir := t.TempDir()
	require.NoError(t, Export(zap.NewNop().Sugar(), book, dir))

	first, err := os.ReadFile(filepath.Join(dir, "Hack", "0.1.O.txt"))
	require.NoError(t, err)
	assert.Equal(t, "First chapter text.", string(first))

	third, err := os.ReadFile(filepath.Join(dir, "Trace", "1.1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Third chapter text.", string(third))
}

func TestExportReplacesExistingArcDir(t *testing.T) {
	dir := t.TempDir()
	arcDir := filepath.Join(dir, "Hack")
	require.NoError(t, os.MkdirAll(arcDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(arcDir, "stale.txt"), []byte("old"), 0644))

	book := model.NewBook()
	book.Add(&model.Chapter{URL: "u1", Name: "0.1.O", Arc: "Hack", Text: "Fresh."})
	require.NoError(t, Export(zap.NewNop().Sugar(), book, dir))

	_, err := os.Stat(filepath.Join(arcDir, "stale.txt"))
	assert.True(t, os.IsNotExist(err))
	content, err := os.ReadFile(filepath.Join(arcDir, "0.1.O.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Fresh.", string(content))
}

func TestExportCleansUnsafeNames(t *testing.T) {
	book := model.NewBook()
	book.Add(&model.Chapter{URL: "u1", Name: "0.1:O", Arc: "Hack?", Text: "Body."})

	dir := t.TempDir()
	require.NoError(t, Export(zap.NewNop().Sugar(), book, dir))

	_, err := os.Stat(filepath.Join(dir, "Hack_", "0.1_O.txt"))
	assert.NoError(t, err)
}
