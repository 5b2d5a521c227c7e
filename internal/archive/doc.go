// Package archive turns a validated skill directory into a distributable
// .skill file.
//
// Archives are zip files with deterministic content: entries are sorted by
// name, compressed with deflate, stamped with a fixed modification time and
// stored with one of two normalized modes. Packaging the same tree twice
// yields identical bytes regardless of file timestamps. Entry names are
// relative to the skill directory's parent so every archive unpacks into a
// single top-level directory named after the skill.
//
// An archive is written only after the skill passes validation, and only
// through a temporary file that is renamed into place once complete. A
// missing output directory is created only after the skill tree has been
// walked.
package archive
