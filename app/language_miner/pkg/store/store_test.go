package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
)

func seed(t *testing.T, s *FileStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		mm := &model.MessageMap{
			GeneratedAt:      fmt.Sprintf("2025-01-0%dT10:00:00Z", i+1),
			RunID:            fmt.Sprintf("run-%d", i),
			Metadata:         model.Metadata{Query: fmt.Sprintf("q%d", i)},
			ExecutiveSummary: model.ExecutiveSummary{TopPainPoint: "p"},
			RawDataSummary:   &model.RawDataSummary{TotalItems: i + 10},
		}
		_, err := s.Save(mm, render.FormatAll)
		require.NoError(t, err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	s := NewFileStore(t.TempDir())
	seed(t, s, 3)

	ids, err := s.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"message_map_20250103_100000",
		"message_map_20250102_100000",
		"message_map_20250101_100000",
	}, ids)

	page, total, err := s.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "q2", page[0].Query)
	assert.Equal(t, 12, page[0].TotalItems)

	page, _, err = s.List(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "run-0", page[0].RunID)

	page, _, err = s.List(5, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestFileStoreGet(t *testing.T) {
	s := NewFileStore(t.TempDir())
	seed(t, s, 1)

	mm, err := s.Get("message_map_20250101_100000")
	require.NoError(t, err)
	assert.Equal(t, "q0", mm.Metadata.Query)

	_, err = s.Get("message_map_20990101_000000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "message_map_20250101_000000.json"), []byte("{"), 0o644))
	_, err := NewFileStore(dir).Get("message_map_20250101_000000")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreMissingDir(t *testing.T) {
	ids, err := NewFileStore(filepath.Join(t.TempDir(), "nope")).IDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
