// Package manifest splits a SKILL.md document into its YAML header block and
// free-form body and decodes the header into a field mapping. It performs no
// schema checks; see package validate for the rules applied to the decoded
// fields.
package manifest
