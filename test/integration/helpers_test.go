//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // SKILLPACK_HOME: config.yaml lives here
	SkillsDir string // where skills are scaffolded
	OutputDir string // where archives are written
}

// setupTestEnv creates isolated temp directories and points SKILLPACK_HOME
// at one of them so no test touches the real user config.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		SkillsDir: t.TempDir(),
		OutputDir: t.TempDir(),
	}
	t.Setenv("SKILLPACK_HOME", env.HomeDir)
	return env
}

var todoMarker = regexp.MustCompile(`\[TODO:[^\]]*\]`)

// fillPlaceholders replaces every [TODO: ...] marker in the skill's SKILL.md.
func fillPlaceholders(t *testing.T, skillDir, with string) {
	t.Helper()
	path := filepath.Join(skillDir, "SKILL.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	filled := todoMarker.ReplaceAllString(string(data), with)
	if err := os.WriteFile(path, []byte(filled), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file's content or fails the test.
func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
