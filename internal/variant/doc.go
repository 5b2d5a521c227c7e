// Package variant describes packaging targets as data. A Variant carries the
// header allow-list, the optional SKILL.md line ceiling, description hints and
// the scaffold template set for one target. Built-in variants are embedded
// from variants.yaml; users may add or override variants with a YAML or TOML
// file, which is checked against a JSON Schema reflected from File.
package variant
