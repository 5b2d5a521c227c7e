// Package registry discovers skill directories below a root. A skill is any
// directory with a SKILL.md at its top level; discovery does not descend
// into a skill once found, and skips VCS and dependency directories.
package registry
