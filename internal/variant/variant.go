package variant

import (
	"sort"
	"strings"
)

// DefaultName is used when neither a flag nor the config selects a variant.
const DefaultName = "claude-code"

// RequiredKeys must appear in every header regardless of variant.
var RequiredKeys = []string{"name", "description"}

// LineLimitMode controls how a variant's line ceiling is enforced.
type LineLimitMode string

const (
	LineLimitOff  LineLimitMode = "off"
	LineLimitWarn LineLimitMode = "warn"
	LineLimitFail LineLimitMode = "fail"
)

// File is the on-disk shape of a variants file.
type File struct {
	SchemaVersion string    `yaml:"schema_version" toml:"schema_version" json:"schema_version" jsonschema:"description=Variants file format version (semver)"`
	Variants      []Variant `yaml:"variants" toml:"variants" json:"variants"`
}

// Variant is the configuration for one packaging target.
type Variant struct {
	Name             string        `yaml:"name" toml:"name" json:"name" jsonschema:"pattern=^[a-z0-9]+(-[a-z0-9]+)*$"`
	Description      string        `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	AllowedKeys      []string      `yaml:"allowed_keys,omitempty" toml:"allowed_keys" json:"allowed_keys,omitempty" jsonschema:"description=Optional header keys accepted besides name and description"`
	LineLimit        int           `yaml:"line_limit,omitempty" toml:"line_limit" json:"line_limit,omitempty" jsonschema:"minimum=0"`
	LineLimitMode    LineLimitMode `yaml:"line_limit_mode,omitempty" toml:"line_limit_mode" json:"line_limit_mode,omitempty" jsonschema:"enum=off,enum=warn,enum=fail"`
	DescriptionHints []string      `yaml:"description_hints,omitempty" toml:"description_hints" json:"description_hints,omitempty"`
	Templates        string        `yaml:"templates,omitempty" toml:"templates" json:"templates,omitempty"`
}

// Allowed reports whether key may appear in a header for this variant.
func (v *Variant) Allowed(key string) bool {
	for _, k := range RequiredKeys {
		if k == key {
			return true
		}
	}
	for _, k := range v.AllowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// AllowList returns every accepted key, required ones included, sorted.
func (v *Variant) AllowList() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range append(append([]string{}, RequiredKeys...), v.AllowedKeys...) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// EffectiveLineLimitMode resolves an unset mode: off without a limit, warn
// with one.
func (v *Variant) EffectiveLineLimitMode() LineLimitMode {
	if v.LineLimit <= 0 {
		return LineLimitOff
	}
	if v.LineLimitMode == "" {
		return LineLimitWarn
	}
	return v.LineLimitMode
}

// TemplateSet returns the scaffold template set name, defaulting to the
// variant name.
func (v *Variant) TemplateSet() string {
	if v.Templates != "" {
		return v.Templates
	}
	return v.Name
}

func (v *Variant) normalize() {
	v.Name = strings.TrimSpace(v.Name)
	v.Templates = strings.TrimSpace(v.Templates)
	keys := v.AllowedKeys[:0]
	for _, k := range v.AllowedKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	v.AllowedKeys = keys
}
