package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/skillpack/internal/manifest"
	"github.com/agentx-labs/skillpack/internal/variant"
)

const (
	MaxNameLength        = 64
	MaxDescriptionLength = 1024

	// PlaceholderMarker flags template text that still needs to be filled in.
	PlaceholderMarker = "[TODO:"
)

// Result is the outcome of validating one skill. It is never partially
// filled: OK and Message are always set together.
type Result struct {
	OK       bool
	Message  string
	Warnings []string
	Lines    int
}

func fail(format string, args ...interface{}) Result {
	return Result{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Skill validates the SKILL.md at the root of dir against v. A nil variant
// selects the built-in default.
func Skill(dir string, v *variant.Variant) Result {
	path := filepath.Join(dir, manifest.FileName)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return fail("manifest not found: %s", path)
		}
		return fail("manifest could not be read: %v", err)
	}

	text, err := manifest.ReadFile(path)
	if err != nil {
		return fail("manifest could not be read: %v", err)
	}
	return Document(text, v)
}

// Document validates manifest text against v.
func Document(text string, v *variant.Variant) Result {
	if v == nil {
		def, err := defaultVariant()
		if err != nil {
			return fail("%v", err)
		}
		v = def
	}

	doc, err := manifest.Split(text)
	if err != nil {
		return fail("%v", err)
	}
	fields, err := manifest.DecodeHeader(doc.Header)
	if err != nil {
		return fail("%v", err)
	}

	for _, rule := range rules {
		if res, failed := rule(fields, text, v); failed {
			return res
		}
	}

	lines := countLines(text)
	res := Result{
		OK:       true,
		Message:  fmt.Sprintf("skill is valid (%d lines)", lines),
		Lines:    lines,
		Warnings: warnings(fields, text, v, lines),
	}
	return res
}

type rule func(fields manifest.Fields, text string, v *variant.Variant) (Result, bool)

// rules run in order; the first failing rule decides the result.
var rules = []rule{
	checkRequired,
	checkAllowList,
	checkName,
	checkDescription,
	checkPlaceholders,
	checkLineLimit,
}

func checkRequired(fields manifest.Fields, _ string, _ *variant.Variant) (Result, bool) {
	for _, key := range variant.RequiredKeys {
		if _, ok := fields[key]; !ok {
			return fail("missing required field: %s", key), true
		}
	}
	return Result{}, false
}

func checkAllowList(fields manifest.Fields, _ string, v *variant.Variant) (Result, bool) {
	var unexpected []string
	for _, key := range fields.Keys() {
		if !v.Allowed(key) {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) == 0 {
		return Result{}, false
	}
	sort.Strings(unexpected)
	return fail("unexpected key(s): %s; allowed: %s",
		strings.Join(unexpected, ", "), strings.Join(v.AllowList(), ", ")), true
}

func checkName(fields manifest.Fields, _ string, _ *variant.Variant) (Result, bool) {
	raw := fields["name"]
	name, ok := raw.(string)
	if !ok {
		return fail("name must be a string, got %s", manifest.TypeName(raw)), true
	}
	if err := CheckName(strings.TrimSpace(name)); err != nil {
		return fail("%v", err), true
	}
	return Result{}, false
}

func checkDescription(fields manifest.Fields, _ string, _ *variant.Variant) (Result, bool) {
	raw := fields["description"]
	desc, ok := raw.(string)
	if !ok {
		return fail("description must be a string, got %s", manifest.TypeName(raw)), true
	}
	desc = strings.TrimSpace(desc)
	switch {
	case desc == "":
		return fail("description must not be empty"), true
	case strings.ContainsAny(desc, "<>"):
		return fail("description must not contain angle brackets (< or >)"), true
	}
	if n := utf8.RuneCountInString(desc); n > MaxDescriptionLength {
		return fail("description is too long (%d characters, max %d)", n, MaxDescriptionLength), true
	}
	return Result{}, false
}

func checkPlaceholders(_ manifest.Fields, text string, _ *variant.Variant) (Result, bool) {
	if n := strings.Count(text, PlaceholderMarker); n > 0 {
		return fail("unresolved placeholder(s) remain: %d %s] marker(s); complete them before packaging", n, PlaceholderMarker), true
	}
	return Result{}, false
}

func checkLineLimit(_ manifest.Fields, text string, v *variant.Variant) (Result, bool) {
	if v.EffectiveLineLimitMode() != variant.LineLimitFail {
		return Result{}, false
	}
	if lines := countLines(text); lines > v.LineLimit {
		return fail("%s has %d lines, exceeding the limit of %d", manifest.FileName, lines, v.LineLimit), true
	}
	return Result{}, false
}

// CheckName applies the naming rule. Each violation class has its own
// message.
func CheckName(name string) error {
	if name == "" {
		return errors.New("name must not be empty")
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("name %q must be hyphen-case (lowercase letters, digits and hyphens only)", name)
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("name %q must not start or end with a hyphen", name)
	}
	if strings.Contains(name, "--") {
		return fmt.Errorf("name %q must not contain consecutive hyphens", name)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name is too long (%d characters, max %d)", len(name), MaxNameLength)
	}
	return nil
}

// warnings collects warn-only findings for an otherwise valid document.
func warnings(fields manifest.Fields, text string, v *variant.Variant, lines int) []string {
	var out []string

	if v.EffectiveLineLimitMode() == variant.LineLimitWarn && lines > v.LineLimit {
		out = append(out, fmt.Sprintf("%s has %d lines, exceeding the recommended %d", manifest.FileName, lines, v.LineLimit))
	}

	for _, hint := range v.DescriptionHints {
		if !strings.Contains(text, hint) {
			out = append(out, fmt.Sprintf("recommended phrase %q not found in %s", hint, manifest.FileName))
		}
	}

	if meta, ok := fields["metadata"].(map[string]interface{}); ok {
		if raw, ok := meta["version"]; ok {
			version := fmt.Sprint(raw)
			if _, err := semver.NewVersion(version); err != nil {
				out = append(out, fmt.Sprintf("metadata.version %q is not a valid semantic version", version))
			}
		}
	}

	return out
}

// countLines counts lines the way editors number them: a trailing newline
// starts a final empty line.
func countLines(text string) int {
	return strings.Count(text, "\n") + 1
}

func defaultVariant() (*variant.Variant, error) {
	r, err := variant.Builtin()
	if err != nil {
		return nil, err
	}
	return r.Lookup(variant.DefaultName)
}
