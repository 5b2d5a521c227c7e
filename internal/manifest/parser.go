package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ParseHeader extracts the header block from a manifest document and decodes
// it. Failures are always *ParseError.
func ParseHeader(text string) (Fields, error) {
	doc, err := Split(text)
	if err != nil {
		return nil, err
	}
	return DecodeHeader(doc.Header)
}

// Split separates a document into header and body. The document must start
// with "---" followed by a line break; the header ends at the first later
// line that consists solely of "---".
func Split(text string) (*Document, error) {
	rest, ok := cutOpening(text)
	if !ok {
		return nil, &ParseError{Kind: MissingDelimiter}
	}

	pos := 0
	for {
		lineEnd, next := len(rest), len(rest)
		nl := strings.IndexByte(rest[pos:], '\n')
		if nl >= 0 {
			lineEnd = pos + nl
			next = lineEnd + 1
		}

		line := strings.TrimSuffix(rest[pos:lineEnd], "\r")
		if line == Delimiter {
			header := strings.TrimSuffix(rest[:pos], "\n")
			header = strings.TrimSuffix(header, "\r")
			return &Document{
				Header: header,
				Body:   rest[next:],
				Text:   text,
			}, nil
		}

		if nl < 0 {
			return nil, &ParseError{Kind: UnterminatedHeader}
		}
		pos = next
	}
}

// DecodeHeader decodes a header block as YAML. An empty block decodes to an
// empty mapping.
func DecodeHeader(header string) (Fields, error) {
	var raw interface{}
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, &ParseError{Kind: MalformedHeader, Detail: err.Error()}
	}

	switch v := raw.(type) {
	case nil:
		return Fields{}, nil
	case map[string]interface{}:
		return Fields(v), nil
	case map[interface{}]interface{}:
		// Non-string keys (e.g. "1: x") still need to reach the allow-list check.
		fields := make(Fields, len(v))
		for k, val := range v {
			fields[fmt.Sprint(k)] = val
		}
		return fields, nil
	default:
		return nil, &ParseError{Kind: HeaderNotAMapping, Detail: TypeName(v)}
	}
}

// ReadFile reads a manifest from disk as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}

// TypeName names a decoded YAML value's type for error messages.
func TypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "number"
	case []interface{}:
		return "list"
	case map[string]interface{}, map[interface{}]interface{}, Fields:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func cutOpening(text string) (string, bool) {
	if rest, ok := strings.CutPrefix(text, Delimiter+"\n"); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(text, Delimiter+"\r\n"); ok {
		return rest, true
	}
	return "", false
}
