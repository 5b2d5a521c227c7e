// Package scaffold creates new skill directories from embedded templates. It
// powers the "skillpack init" command. Each variant names a template set;
// the generated SKILL.md deliberately contains [TODO: markers, so a fresh
// skill fails validation until its author fills them in.
package scaffold
