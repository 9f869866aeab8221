package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
	ErrPathIsDirectory = errors.New("path is a directory, not a file")

	// ErrFileNotFound is returned when nothing exists at the path provided to the Fetcher.
	// The underlying fs.ErrNotExist is wrapped as well.
	ErrFileNotFound = errors.New("file not found")
)

// Fetcher implements config.DataFetcher for one YAML file.
// The file is read once, when the Fetcher is constructed.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that reads the file at fpath.
// The path is cleaned before use; errors name the cleaned path.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("stat file %q: %w: %w", cleanPath, ErrFileNotFound, err)
			}

			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the data read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
