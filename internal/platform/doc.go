// Package platform provides cross-platform filesystem helpers: permission
// changes that are a no-op on Windows, symlink resolution for packaging, and
// the normalized file modes written into archives.
package platform
