// Package cli defines the Cobra command tree for the skillpack CLI. Each file
// in this package registers one top-level command (validate, package, init,
// etc.) with the root command. Command implementations delegate to internal
// packages for business logic and only handle flag parsing, variant
// resolution and output formatting.
package cli
