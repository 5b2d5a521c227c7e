package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentx-labs/skillpack/internal/manifest"
)

// excludedNames are directories never searched for skills.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// SkillDir is a skill found during discovery, enriched with header
// metadata when the manifest parses.
type SkillDir struct {
	Path        string // absolute directory path
	Rel         string // slash-separated path relative to the discovery root
	Name        string // header name, or the directory name
	Description string // header description, if any
}

// Discover walks root in lexical order and returns every skill directory
// beneath it. root itself counts when it holds a SKILL.md.
func Discover(root string) ([]SkillDir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	var result []SkillDir
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			return nil // skip inaccessible entries
		}
		if !d.IsDir() {
			return nil
		}
		if path != abs && excludedNames[d.Name()] {
			return filepath.SkipDir
		}

		if !hasManifest(path) {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}
		result = append(result, describe(path, filepath.ToSlash(rel)))
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", abs, err)
	}

	return result, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, manifest.FileName))
	return err == nil && info.Mode().IsRegular()
}

// describe fills in header metadata. A manifest that fails to parse still
// yields a SkillDir; validation reports the problem later.
func describe(dir, rel string) SkillDir {
	sd := SkillDir{Path: dir, Rel: rel, Name: filepath.Base(dir)}

	text, err := manifest.ReadFile(filepath.Join(dir, manifest.FileName))
	if err != nil {
		return sd
	}
	fields, err := manifest.ParseHeader(text)
	if err != nil {
		return sd
	}
	if name, ok := fields["name"].(string); ok && name != "" {
		sd.Name = name
	}
	if desc, ok := fields["description"].(string); ok {
		sd.Description = desc
	}
	return sd
}
