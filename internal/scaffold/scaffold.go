package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/agentx-labs/skillpack/internal/platform"
	"github.com/agentx-labs/skillpack/internal/validate"
	"github.com/agentx-labs/skillpack/internal/variant"
)

// Data holds the template variables available to scaffold templates.
type Data struct {
	Name    string // e.g., "report-writer"
	Title   string // e.g., "Report Writer"
	Variant string // variant the skill was created for
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates Data with derived fields populated.
func NewData(name string, v *variant.Variant) *Data {
	return &Data{
		Name:    name,
		Title:   TitleCase(name),
		Variant: v.Name,
	}
}

// TitleCase turns a hyphen-case name into space-separated capitalized words.
func TitleCase(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// TemplateSets returns the names of the embedded template sets.
func TemplateSets() []string {
	entries, err := fs.ReadDir(scaffoldFS, "scaffolds")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Create generates <destination>/<name> from v's template set. A nil variant
// selects the built-in default. The directory must not already exist. The
// generated skill is validated and any failure is recorded as a warning.
func Create(name, destination string, v *variant.Variant) (*Result, error) {
	if err := validate.CheckName(name); err != nil {
		return nil, fmt.Errorf("invalid skill name: %w", err)
	}

	if v == nil {
		r, err := variant.Builtin()
		if err != nil {
			return nil, err
		}
		if v, err = r.Lookup(variant.DefaultName); err != nil {
			return nil, err
		}
	}

	setName := v.TemplateSet()
	templatesDir := path.Join("scaffolds", setName)
	if _, err := fs.Stat(scaffoldFS, templatesDir); err != nil {
		return nil, fmt.Errorf("template set %q not found (available: %v)", setName, TemplateSets())
	}

	dest, err := filepath.Abs(destination)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", destination, err)
	}
	outputDir := filepath.Join(dest, name)

	if _, err := os.Lstat(outputDir); err == nil {
		return nil, fmt.Errorf("skill directory already exists: %s", outputDir)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}
	if err := os.Mkdir(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating skill directory: %w", err)
	}

	result := &Result{OutputDir: outputDir}
	data := NewData(name, v)

	err = fs.WalkDir(scaffoldFS, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, templatesDir+"/")
		outName, err := render(p, rel, outputDir, data)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, outName)
		return nil
	})
	if err != nil {
		os.RemoveAll(outputDir)
		return nil, err
	}

	sort.Strings(result.Files)

	if res := validate.Skill(outputDir, v); !res.OK {
		result.Warnings = append(result.Warnings, res.Message)
	}

	return result, nil
}

// render executes one template and writes it below outputDir. Files under
// scripts/ are made executable.
func render(tmplPath, rel, outputDir string, data *Data) (string, error) {
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(path.Base(tmplPath)).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	// Strip .tmpl extension for the output filename.
	outName := strings.TrimSuffix(rel, ".tmpl")
	outPath := filepath.Join(outputDir, filepath.FromSlash(outName))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	if strings.HasPrefix(outName, "scripts/") {
		if err := platform.Chmod(outPath, 0755); err != nil {
			return "", fmt.Errorf("setting permissions on %s: %w", outPath, err)
		}
	}
	return outName, nil
}
