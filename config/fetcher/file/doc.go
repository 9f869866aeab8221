// Package file reads YAML settings files from the local filesystem for the
// config package.
//
// A Fetcher is built per file and per load: NewFetcher returns a constructor
// that stats and reads the file, so every call observes the file as it is on
// disk at that moment. Whether that happens once or on every settings
// construction is decided by config.Cache, not here.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/etc/app/settings.yaml")()
//	if errors.Is(err, file.ErrFileNotFound) {
//	    // optional file: skip it
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - ErrFileNotFound (and fs.ErrNotExist) when nothing exists at the path
//   - ErrPathIsDirectory when the path is a directory
//   - every error names the cleaned path
package file
