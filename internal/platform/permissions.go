package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// ArchiveMode collapses a source file mode to the two modes stored in
// archives: 0755 when any execute bit is set, 0644 otherwise.
func ArchiveMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0111 != 0 {
		return 0755
	}
	return 0644
}
