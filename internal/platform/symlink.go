package platform

import (
	"fmt"
	"io/fs"
	"os"
)

// ResolveRegular reports whether the directory entry at path is, or links
// to, a regular file. Directories, dangling links and links to anything
// other than a regular file report false with a nil error. The returned
// info describes the link target.
func ResolveRegular(path string, d fs.DirEntry) (fs.FileInfo, bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		if !d.Type().IsRegular() {
			return nil, false, nil
		}
		info, err := d.Info()
		if err != nil {
			return nil, false, fmt.Errorf("stat %s: %w", path, err)
		}
		return info, true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, false, nil
	}
	return info, true, nil
}
