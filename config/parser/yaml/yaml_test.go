package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_Mapping(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	document, err := parser.Parse([]byte(`
name: test-app
database:
  host: db.example.com
`))

	require.NoError(t, err)

	mapping, ok := document.(map[string]any)
	require.True(t, ok, "expected a mapping, got %T", document)
	assert.Equal(t, "test-app", mapping["name"])
	assert.Equal(t, map[string]any{"host": "db.example.com"}, mapping["database"])
}

func TestParser_Parse_EmptyDocuments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{name: "no bytes", data: ""},
		{name: "whitespace", data: "  \n\n"},
		{name: "explicit null", data: "null\n"},
		{name: "tilde", data: "~\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			document, err := NewParser().Parse([]byte(testCase.data))

			require.NoError(t, err)
			assert.Nil(t, document)
		})
	}
}

func TestParser_Parse_NonMappingDocuments(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	list, err := parser.Parse([]byte("[]\n"))
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.IsType(t, []any{}, list)

	scalar, err := parser.Parse([]byte("just a string\n"))
	require.NoError(t, err)
	assert.Equal(t, "just a string", scalar)
}

func TestParser_Parse_SyntaxError(t *testing.T) {
	t.Parallel()

	document, err := NewParser().Parse([]byte("key: [1, 2\n"))

	require.Error(t, err)
	assert.Nil(t, document)
	assert.Contains(t, err.Error(), "unmarshal error")
}

func TestParser_Parse_MultipleDocuments(t *testing.T) {
	t.Parallel()

	document, err := NewParser().Parse([]byte("a: 1\n---\nb: 2\n"))

	require.ErrorIs(t, err, ErrMultipleDocuments)
	assert.Nil(t, document)
}

func TestParser_Parse_LeadingDocumentMarker(t *testing.T) {
	t.Parallel()

	document, err := NewParser().Parse([]byte("---\na: 1\n"))

	require.NoError(t, err)

	mapping, ok := document.(map[string]any)
	require.True(t, ok, "expected a mapping, got %T", document)
	assert.EqualValues(t, 1, mapping["a"])
}

func TestLookup(t *testing.T) {
	t.Parallel()

	document := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "seven"},
		},
		"scalar": "value",
		"list":   []any{"x", "y"},
		"empty":  nil,
	}

	testCases := []struct {
		name     string
		keys     []string
		expected any
	}{
		{
			name:     "no keys returns document",
			keys:     nil,
			expected: document,
		},
		{
			name:     "nested mapping",
			keys:     []string{"a", "b"},
			expected: map[string]any{"c": "seven"},
		},
		{
			name:     "leaf value",
			keys:     []string{"a", "b", "c"},
			expected: "seven",
		},
		{
			name:     "present null",
			keys:     []string{"empty"},
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			value, err := Lookup(document, testCase.keys)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, value)
		})
	}
}

func TestLookup_NotFound(t *testing.T) {
	t.Parallel()

	document := map[string]any{
		"a":      map[string]any{"b": "value"},
		"scalar": "value",
		"list":   []any{"x", "y"},
	}

	testCases := []struct {
		name     string
		document any
		keys     []string
	}{
		{name: "missing key", document: document, keys: []string{"a", "x"}},
		{name: "missing top-level key", document: document, keys: []string{"missing"}},
		{name: "through scalar", document: document, keys: []string{"scalar", "nested"}},
		{name: "through list", document: document, keys: []string{"list", "nested"}},
		{name: "nil document", document: nil, keys: []string{"a"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			value, err := Lookup(testCase.document, testCase.keys)

			require.ErrorIs(t, err, ErrPathNotFound)
			assert.Nil(t, value)
		})
	}
}

func TestLookup_ParsedDocument(t *testing.T) {
	t.Parallel()

	document, err := NewParser().Parse([]byte(`
a:
  b:
    c: 7
`))
	require.NoError(t, err)

	value, err := Lookup(document, []string{"a", "b"})
	require.NoError(t, err)

	section, ok := value.(map[string]any)
	require.True(t, ok, "expected a mapping, got %T", value)
	assert.EqualValues(t, 7, section["c"])
}

func TestPathString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$", PathString(nil))
	assert.Equal(t, "$.a", PathString([]string{"a"}))
	assert.Equal(t, "$.a.b", PathString([]string{"a", "b"}))
}
