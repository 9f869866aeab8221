package yaml

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// ErrMultipleDocuments is returned when the data holds more than one YAML document.
var ErrMultipleDocuments = errors.New("expected a single yaml document")

// Parser implements config.Parser for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML document into an untyped value.
// An empty document, or one holding only comments or null, yields nil.
// Data holding several documents is rejected with ErrMultipleDocuments.
func (p *Parser) Parse(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMultipleDocuments, len(file.Docs))
	}

	var document any

	err = yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return document, nil
}

// Lookup returns the value found by following keys through nested mappings
// of document, using goccy/go-yaml path filtering.
// It returns ErrPathNotFound when a key is absent or an intermediate value is
// not a mapping. A present key holding null resolves to nil.
func Lookup(document any, keys []string) (any, error) {
	path := buildPath(keys)

	var value any

	err := path.Filter(document, &value)
	if err != nil {
		if isKeyNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("reading path %q: %w", path, err)
	}

	return value, nil
}

// PathString renders keys in goccy/go-yaml path syntax.
// An empty key list is the document root "$".
func PathString(keys []string) string {
	return buildPath(keys).String()
}

func buildPath(keys []string) *yaml.Path {
	builder := (&yaml.PathBuilder{}).Root()
	for _, key := range keys {
		builder = builder.Child(key)
	}

	return builder.Build()
}

// isKeyNotFoundError checks if the error indicates a key was not found,
// including a key looked up below a scalar or a sequence.
func isKeyNotFoundError(err error) bool {
	return yaml.IsNotFoundNodeError(err) || yaml.IsInvalidQueryError(err)
}
