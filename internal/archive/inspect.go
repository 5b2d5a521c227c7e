package archive

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
)

// Entry describes one file stored in an archive.
type Entry struct {
	Name   string      `json:"name"`
	Size   int64       `json:"size"`
	Mode   fs.FileMode `json:"mode"`
	SHA256 string      `json:"sha256"`
}

// Inspect lists the entries of the archive at path in stored order, hashing
// each entry's uncompressed content.
func Inspect(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		sum, n, err := hashFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s in %s: %w", f.Name, path, err)
		}
		entries = append(entries, Entry{
			Name:   f.Name,
			Size:   n,
			Mode:   f.Mode().Perm(),
			SHA256: sum,
		})
	}
	return entries, nil
}

func hashFile(f *zip.File) (string, int64, error) {
	rc, err := f.Open()
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()

	h := sha256.New()
	n, err := io.Copy(h, rc)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
