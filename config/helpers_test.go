package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/yaml-settings/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// StaticDataFetcher implements config.DataFetcher with static data.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

// staticFiles serves documents from memory and counts reads per path.
type staticFiles struct {
	documents map[config.FilePath]string
	reads     map[config.FilePath]int
}

func newStaticFiles(documents map[config.FilePath]string) *staticFiles {
	return &staticFiles{documents: documents, reads: make(map[config.FilePath]int)}
}

func (s *staticFiles) fetch(path config.FilePath) (config.DataFetcher, error) {
	s.reads[path]++

	document, ok := s.documents[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: string(path), Err: fs.ErrNotExist}
	}

	return &StaticDataFetcher{Data: []byte(document)}, nil
}
