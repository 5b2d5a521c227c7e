package manifest

import (
	"errors"
	"fmt"
)

// FileName is the manifest file every skill directory must carry at its root.
const FileName = "SKILL.md"

// Delimiter opens and closes the header block.
const Delimiter = "---"

// Fields is the decoded header block. Values are whatever the YAML decoder
// produced: strings, bools, numbers, []any, or nested map[string]any.
type Fields map[string]any

// Keys returns the header keys in no particular order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	return keys
}

// Document is a manifest split into its two structural parts.
type Document struct {
	Header string // text strictly between the two delimiter lines
	Body   string // text after the closing delimiter line
	Text   string // the full original text
}

// ErrorKind classifies header parse failures.
type ErrorKind int

const (
	MissingDelimiter ErrorKind = iota + 1
	UnterminatedHeader
	MalformedHeader
	HeaderNotAMapping
)

func (k ErrorKind) String() string {
	switch k {
	case MissingDelimiter:
		return "missing delimiter"
	case UnterminatedHeader:
		return "unterminated header"
	case MalformedHeader:
		return "malformed header"
	case HeaderNotAMapping:
		return "header not a mapping"
	default:
		return "unknown"
	}
}

// ErrParse matches every *ParseError with errors.Is.
var ErrParse = errors.New("manifest parse error")

// ParseError reports why a header block could not be decoded.
type ParseError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingDelimiter:
		return "no YAML header found: document must start with '---' on its own line"
	case UnterminatedHeader:
		return "header block is not terminated: closing '---' line not found"
	case MalformedHeader:
		return fmt.Sprintf("invalid YAML in header: %s", e.Detail)
	case HeaderNotAMapping:
		return fmt.Sprintf("header must be a YAML mapping, got %s", e.Detail)
	default:
		return "invalid header"
	}
}

// Is lets errors.Is(err, ErrParse) succeed for any parse failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
