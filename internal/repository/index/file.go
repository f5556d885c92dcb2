package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads search.json from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the index at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Path returns the index file location.
func (s *FileSource) Path() string { return s.path }

// Fetch implements index.Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.path, err)
	}
	return data, nil
}
