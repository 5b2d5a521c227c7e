package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentx-labs/skillpack/internal/manifest"
	"github.com/agentx-labs/skillpack/internal/platform"
	"github.com/agentx-labs/skillpack/internal/validate"
	"github.com/agentx-labs/skillpack/internal/variant"
)

// Extension is appended to the skill directory name to form the archive name.
const Extension = ".skill"

// ModTime is stamped on every archive entry.
var ModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options configures Package.
type Options struct {
	// OutputDir receives the archive. Empty means the working directory.
	OutputDir string
	// Variant selects the validation rules. Nil means the built-in default.
	Variant *variant.Variant
	// Exclude lists doublestar patterns matched against slash-separated
	// paths relative to the skill directory.
	Exclude []string
	// Progress, when set, receives one "added: <name>" line per entry.
	Progress io.Writer
}

type entry struct {
	source string
	name   string
	mode   fs.FileMode
}

// Package validates the skill at dir and, if it passes, writes
// <OutputDir>/<base(dir)>.skill. It returns the absolute archive path.
func Package(dir string, opts Options) (string, error) {
	skillDir, err := filepath.Abs(dir)
	if err != nil {
		return "", ioError(dir, "resolving", err)
	}

	info, err := os.Stat(skillDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &PackageError{Kind: NotFound, Path: skillDir, Err: err}
		}
		return "", ioError(skillDir, "reading", err)
	}
	if !info.IsDir() {
		return "", &PackageError{Kind: NotADirectory, Path: skillDir}
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return "", &PackageError{Kind: InvalidOption, Message: fmt.Sprintf("invalid exclude pattern %q", pattern)}
		}
	}

	res := validate.Skill(skillDir, opts.Variant)
	if !res.OK {
		return "", &PackageError{Kind: ValidationFailed, Path: skillDir, Message: res.Message}
	}

	outDir, err := outputDir(opts.OutputDir)
	if err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, filepath.Base(skillDir)+Extension)

	entries, err := collect(skillDir, outPath, opts.Exclude)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", ioError(outDir, "creating output directory", err)
	}
	if err := writeAtomic(outPath, entries, opts.Progress); err != nil {
		return "", err
	}
	return outPath, nil
}

// outputDir resolves the destination directory without creating it; Package
// creates it only once the archive is ready to be written.
func outputDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", ioError(".", "resolving working directory", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", ioError(dir, "resolving", err)
	}
	return abs, nil
}

// collect walks skillDir and returns the files to archive sorted by entry
// name. The archive itself is skipped when it lives inside skillDir, and the
// manifest is never excluded.
func collect(skillDir, outPath string, exclude []string) ([]entry, error) {
	parent := filepath.Dir(skillDir)
	var entries []entry

	err := filepath.WalkDir(skillDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return ioError(path, "reading", err)
		}
		if path == skillDir {
			return nil
		}

		rel, err := filepath.Rel(skillDir, path)
		if err != nil {
			return ioError(path, "resolving", err)
		}
		if rel != manifest.FileName && excluded(filepath.ToSlash(rel), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || path == outPath {
			return nil
		}

		info, ok, err := platform.ResolveRegular(path, d)
		if err != nil {
			return ioError(path, "reading", err)
		}
		if !ok {
			return nil
		}

		name, err := filepath.Rel(parent, path)
		if err != nil {
			return ioError(path, "resolving", err)
		}
		entries = append(entries, entry{
			source: path,
			name:   filepath.ToSlash(name),
			mode:   platform.ArchiveMode(info.Mode()),
		})
		return nil
	})
	if err != nil {
		var pe *PackageError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, ioError(skillDir, "walking", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// writeAtomic writes the archive to a temporary file next to outPath and
// renames it into place. On any failure the temporary file is removed and
// outPath is left untouched.
func writeAtomic(outPath string, entries []entry, progress io.Writer) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+strings.TrimSuffix(filepath.Base(outPath), Extension)+"-*.tmp")
	if err != nil {
		return ioError(filepath.Dir(outPath), "creating temporary file in", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, e := range entries {
		if err := addEntry(zw, e); err != nil {
			return err
		}
		if progress != nil {
			fmt.Fprintf(progress, "added: %s\n", e.name)
		}
	}
	if err := zw.Close(); err != nil {
		return ioError(tmpPath, "finalizing archive", err)
	}
	if err := tmp.Sync(); err != nil {
		return ioError(tmpPath, "syncing", err)
	}
	if err := tmp.Close(); err != nil {
		return ioError(tmpPath, "closing", err)
	}
	if err := platform.Chmod(tmpPath, 0644); err != nil {
		return ioError(tmpPath, "setting permissions on", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return ioError(outPath, "writing", err)
	}
	committed = true
	return nil
}

func addEntry(zw *zip.Writer, e entry) error {
	hdr := &zip.FileHeader{
		Name:     e.name,
		Method:   zip.Deflate,
		Modified: ModTime,
	}
	hdr.SetMode(e.mode)

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return ioError(e.source, "adding", err)
	}

	f, err := os.Open(e.source)
	if err != nil {
		return ioError(e.source, "reading", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return ioError(e.source, "reading", err)
	}
	return nil
}
