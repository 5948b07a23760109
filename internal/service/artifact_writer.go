package service

import (
	"context"
	"fmt"
	"path/filepath"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ArtifactWriter saves generated notes and summaries as text files.
type ArtifactWriter interface {
	Write(ctx context.Context, sessionID string, kind domain.ArtifactKind, text string) (string, error)
}

type fileArtifactWriter struct {
	fs         afero.Fs
	dir        string
	perSession bool
}

// NewArtifactWriter writes <dir>/<kind>.txt on fs, overwriting earlier output.
// With perSession set the file goes to <dir>/<sessionID>/<kind>.txt instead,
// so that concurrent users of one server do not overwrite each other.
func NewArtifactWriter(fs afero.Fs, dir string, perSession bool) ArtifactWriter {
	if dir == "" {
		dir = "."
	}
	return &fileArtifactWriter{fs: fs, dir: dir, perSession: perSession}
}

func (w *fileArtifactWriter) Write(ctx context.Context, sessionID string, kind domain.ArtifactKind, text string) (string, error) {
	if !kind.Valid() {
		return "", domain.NewInvalidInputError(fmt.Sprintf("unknown artifact kind %q", kind))
	}
	dir := w.dir
	if w.perSession {
		dir = filepath.Join(dir, sessionID)
	}
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewInternalError("failed to create artifact directory", err)
	}
	path := filepath.Join(dir, kind.Filename())
	if err := afero.WriteFile(w.fs, path, []byte(text), 0o644); err != nil {
		return "", domain.NewInternalError(fmt.Sprintf("failed to write %s", path), err)
	}
	logger.Get().Debug("Wrote artifact file", zap.String("path", path), zap.Int("bytes", len(text)))
	return path, nil
}

type noopArtifactWriter struct{}

// NewNoopArtifactWriter is used when artifact files are disabled.
func NewNoopArtifactWriter() ArtifactWriter { return noopArtifactWriter{} }

func (noopArtifactWriter) Write(context.Context, string, domain.ArtifactKind, string) (string, error) {
	return "", nil
}
