package variant

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// SupportedSchema is the range of variants file versions this build reads.
const SupportedSchema = ">= 1.0, < 2.0"

// Load reads a variants file. Files ending in .toml are decoded as TOML,
// everything else as YAML. The document is checked against the variants
// schema before it is decoded into File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variants file %s: %w", path, err)
	}

	isTOML := strings.EqualFold(filepath.Ext(path), ".toml")

	var raw interface{}
	if isTOML {
		var m map[string]interface{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("parsing variants file %s: %w", path, err)
		}
		raw = m
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing variants file %s: %w", path, err)
	}

	if err := checkSchema(raw); err != nil {
		return nil, fmt.Errorf("validating variants file %s: %w", path, err)
	}

	var f File
	if isTOML {
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("decoding variants file %s: %w", path, err)
		}
		if !meta.IsDefined("schema_version") {
			return nil, fmt.Errorf("variants file %s: schema_version is required", path)
		}
	} else if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding variants file %s: %w", path, err)
	}

	if err := checkSchemaVersion(f.SchemaVersion); err != nil {
		return nil, fmt.Errorf("variants file %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for _, v := range f.Variants {
		name := strings.TrimSpace(v.Name)
		if seen[name] {
			return nil, fmt.Errorf("variants file %s: duplicate variant %q", path, name)
		}
		seen[name] = true
	}

	return &f, nil
}

func checkSchemaVersion(version string) error {
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", SupportedSchema, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported schema_version %q (supported: %s)", version, SupportedSchema)
	}
	return nil
}
