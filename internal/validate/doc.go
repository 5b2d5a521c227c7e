// Package validate applies the skill schema to a SKILL.md document: required
// fields, the variant's header allow-list, naming and description rules, and
// the unresolved-placeholder check. Rules run in a fixed order and stop at the
// first failure; warn-only rules never change the outcome.
package validate
