package service

import (
	"context"
	"path/filepath"
	"testing"

	"notes-assistant/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactWriter_Flat(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewArtifactWriter(fs, "out", false)
	ctx := context.Background()

	path, err := w.Write(ctx, testSessionID, domain.ArtifactNotes, "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "notes.txt"), path)

	_, err = w.Write(ctx, testSessionID, domain.ArtifactNotes, "second")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data), "later output overwrites")
}

func TestArtifactWriter_PerSession(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewArtifactWriter(fs, "", true)

	path, err := w.Write(context.Background(), testSessionID, domain.ArtifactSummary, "short")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".", testSessionID, "summary.txt"), path)

	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArtifactWriter_RejectsUnknownKind(t *testing.T) {
	w := NewArtifactWriter(afero.NewMemMapFs(), "out", false)
	_, err := w.Write(context.Background(), testSessionID, domain.ArtifactKind("quiz"), "x")
	assert.Equal(t, domain.CodeInvalidInput, domain.CodeOf(err))
}

func TestArtifactWriter_ReadOnlyFs(t *testing.T) {
	w := NewArtifactWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "out", false)
	_, err := w.Write(context.Background(), testSessionID, domain.ArtifactNotes, "x")
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
}
