package variant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "variants.schema.json"

// reflector inlines definitions so the schema is a single self-contained
// document.
var reflector = &invopop.Reflector{
	DoNotReference: true,
	Anonymous:      true,
}

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation in a variants file.
type Issue struct {
	Path    string // instance location, e.g. "/variants/0/name"
	Message string
	Keyword string
}

// SchemaError lists every schema violation found in a variants file.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return "schema violations: " + strings.Join(parts, "; ")
}

// Schema returns the JSON Schema for variants files, reflected from File.
func Schema() ([]byte, error) {
	s := reflector.Reflect(&File{})
	return json.MarshalIndent(s, "", "  ")
}

// getSchema compiles the reflected schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = fmt.Errorf("reflecting schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// checkSchema validates a decoded (YAML or TOML) document. Schema violations
// are returned as *SchemaError; anything else is an internal failure.
func checkSchema(raw interface{}) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	jsonData, err := json.Marshal(normalize(raw))
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &SchemaError{Issues: extractIssues(ve)}
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return deduplicate(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

func deduplicate(issues []Issue) []Issue {
	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalize converts decoder output into JSON-marshalable values. YAML may
// produce map[interface{}]interface{} for non-string keys.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = normalize(item)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = normalize(item)
		}
		return a
	case []map[string]interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = normalize(item)
		}
		return a
	default:
		return val
	}
}
