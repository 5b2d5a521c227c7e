package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveRegular(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require developer mode on Windows")
	}

	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(file, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmp, "dir"), 0755); err != nil {
		t.Fatal(err)
	}
	mustSymlink(t, file, filepath.Join(tmp, "to-file"))
	mustSymlink(t, filepath.Join(tmp, "dir"), filepath.Join(tmp, "to-dir"))
	mustSymlink(t, filepath.Join(tmp, "missing"), filepath.Join(tmp, "dangling"))

	tests := []struct {
		name string
		want bool
	}{
		{"file.txt", true},
		{"dir", false},
		{"to-file", true},
		{"to-dir", false},
		{"dangling", false},
	}

	entries := readEntries(t, tmp)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := entries[tt.name]
			if !ok {
				t.Fatalf("entry %s not found", tt.name)
			}
			info, ok, err := ResolveRegular(filepath.Join(tmp, tt.name), d)
			if err != nil {
				t.Fatalf("ResolveRegular: %v", err)
			}
			if ok != tt.want {
				t.Errorf("ResolveRegular(%s) = %v, want %v", tt.name, ok, tt.want)
			}
			if ok && info.Size() != 5 {
				t.Errorf("size = %d, want 5 (target size)", info.Size())
			}
		})
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func mustSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
}

func readEntries(t *testing.T, dir string) map[string]fs.DirEntry {
	t.Helper()
	list, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]fs.DirEntry, len(list))
	for _, d := range list {
		out[d.Name()] = d
	}
	return out
}
