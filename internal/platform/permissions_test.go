package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod_Executable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.py")
	if err := os.WriteFile(path, []byte("#!/usr/bin/env python3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0755); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0755 {
		t.Errorf("permissions = %o, want 755", perm)
	}
	if got := ArchiveMode(info.Mode()); got != 0755 {
		t.Errorf("ArchiveMode(after chmod) = %o, want 755", got)
	}
}

func TestArchiveMode(t *testing.T) {
	tests := []struct {
		in   fs.FileMode
		want fs.FileMode
	}{
		{0644, 0644},
		{0600, 0644},
		{0400, 0644},
		{0666, 0644},
		{0755, 0755},
		{0700, 0755},
		{0744, 0755},
		{0654, 0755},
		{0645, 0755},
		{0777, 0755},
	}
	for _, tt := range tests {
		if got := ArchiveMode(tt.in); got != tt.want {
			t.Errorf("ArchiveMode(%o) = %o, want %o", tt.in, got, tt.want)
		}
	}
}
