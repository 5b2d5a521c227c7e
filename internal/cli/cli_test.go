package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentx-labs/skillpack/internal/archive"
)

const validManifest = "---\nname: report-writer\ndescription: Writes reports.\n---\n# Report Writer\n"

func TestValidateCommand(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "report-writer", validManifest)

	out, err := execute(t, "validate", skill)
	if err != nil {
		t.Fatalf("validate error: %v\n%s", err, out)
	}
	assertContains(t, out, "skill is valid")
}

func TestValidateCommand_Failure(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "bad", "---\nname: Bad_Name\ndescription: d\n---\n")

	out, err := execute(t, "validate", skill)
	if err == nil {
		t.Fatal("expected error for invalid skill")
	}
	assertContains(t, out, "must be hyphen-case")
}

func TestValidateCommand_VariantFlag(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "s", "---\nname: s\ndescription: d\nuser-invocable: true\n---\n")

	if out, err := execute(t, "validate", skill); err != nil {
		t.Fatalf("claude-code should accept user-invocable: %v\n%s", err, out)
	}
	out, err := execute(t, "validate", skill, "--variant", "gemini-cli")
	if err == nil {
		t.Fatal("gemini-cli should reject user-invocable")
	}
	assertContains(t, out, "unexpected key(s): user-invocable")
}

func TestValidateCommand_VariantFromConfig(t *testing.T) {
	isolateConfig(t)
	t.Setenv("SKILLPACK_VARIANT", "antigravity")
	skill := writeSkill(t, t.TempDir(), "s", "---\nname: s\ndescription: d\n---\n")

	out, err := execute(t, "validate", skill)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	assertContains(t, out, `"Use when:"`)
}

func TestValidateCommand_All(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()
	writeSkill(t, root, "good", "---\nname: good\ndescription: d\n---\n")
	writeSkill(t, root, "bad", "---\nname: bad\n---\n")

	out, err := execute(t, "validate", root, "--all")
	if err == nil {
		t.Fatal("expected failure when one skill is invalid")
	}
	assertContains(t, out, "bad: missing required field: description")
	assertContains(t, out, "good: skill is valid")
	assertContains(t, out, "2 skill(s) checked, 1 failed")
}

func TestValidateCommand_VariantsFile(t *testing.T) {
	isolateConfig(t)
	file := filepath.Join(t.TempDir(), "variants.toml")
	writeFile(t, file, "schema_version = \"1.0\"\n\n[[variants]]\nname = \"internal\"\nallowed_keys = [\"owner\"]\n")
	skill := writeSkill(t, t.TempDir(), "s", "---\nname: s\ndescription: d\nowner: team-a\n---\n")

	if out, err := execute(t, "validate", skill, "--variants-file", file, "--variant", "internal"); err != nil {
		t.Fatalf("validate error: %v\n%s", err, out)
	}
}

func TestPackageCommand(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "report-writer", validManifest)
	writeFile(t, filepath.Join(skill, "scripts", "run.py"), "print()\n")
	writeFile(t, filepath.Join(skill, "scripts", "cache.pyc"), "")
	outDir := t.TempDir()

	out, err := execute(t, "package", skill, outDir, "--exclude", "**/*.pyc")
	if err != nil {
		t.Fatalf("package error: %v\n%s", err, out)
	}
	assertContains(t, out, "added: report-writer/SKILL.md")
	assertContains(t, out, "added: report-writer/scripts/run.py")
	if strings.Contains(out, "cache.pyc") {
		t.Errorf("excluded file was added:\n%s", out)
	}

	entries, err := archive.Inspect(filepath.Join(outDir, "report-writer.skill"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("archive has %d entries, want 2", len(entries))
	}
}

func TestPackageCommand_OutputDirFromConfig(t *testing.T) {
	isolateConfig(t)
	outDir := t.TempDir()
	t.Setenv("SKILLPACK_OUTPUT_DIR", outDir)
	skill := writeSkill(t, t.TempDir(), "report-writer", validManifest)

	out, err := execute(t, "package", skill, "-q")
	if err != nil {
		t.Fatalf("package error: %v\n%s", err, out)
	}
	want := filepath.Join(outDir, "report-writer.skill")
	if strings.TrimSpace(out) != want {
		t.Errorf("output = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestPackageCommand_InvalidSkill(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "todo", "---\nname: todo\ndescription: d\n---\n[TODO: finish this]\n")
	outDir := t.TempDir()

	out, err := execute(t, "package", skill, outDir)
	if err == nil {
		t.Fatal("expected error")
	}
	assertContains(t, out, "validation failed: unresolved placeholder")

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Errorf("output dir should be empty, has %d entries", len(entries))
	}
}

func TestPackageCommand_All(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()
	writeSkill(t, root, "one", "---\nname: one\ndescription: d\n---\n")
	writeSkill(t, filepath.Join(root, "nested"), "two", "---\nname: two\ndescription: d\n---\n")
	outDir := t.TempDir()

	if out, err := execute(t, "package", root, outDir, "--all"); err != nil {
		t.Fatalf("package --all error: %v\n%s", err, out)
	}
	for _, name := range []string{"one.skill", "two.skill"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestInitCommand(t *testing.T) {
	isolateConfig(t)
	dest := t.TempDir()

	out, err := execute(t, "init", "lesson-plan", "--path", dest)
	if err != nil {
		t.Fatalf("init error: %v\n%s", err, out)
	}
	assertContains(t, out, "Created skill lesson-plan")
	assertContains(t, out, "unresolved placeholder")
	if _, err := os.Stat(filepath.Join(dest, "lesson-plan", "scripts", "example.py")); err != nil {
		t.Errorf("example.py missing: %v", err)
	}
}

func TestInitCommand_RequiresPath(t *testing.T) {
	isolateConfig(t)
	if _, err := execute(t, "init", "x"); err == nil {
		t.Fatal("expected error without --path")
	}
}

func TestInspectCommand_JSON(t *testing.T) {
	isolateConfig(t)
	skill := writeSkill(t, t.TempDir(), "report-writer", validManifest)
	path, err := archive.Package(skill, archive.Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", path, "--json")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	var entries []archive.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("inspect output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Name != "report-writer/SKILL.md" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestVariantsCommands(t *testing.T) {
	isolateConfig(t)

	out, err := execute(t, "variants", "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"antigravity", "claude-code", "gemini-cli", "500 (fail)"} {
		assertContains(t, out, name)
	}

	out, err = execute(t, "variants", "schema")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, `"schema_version"`)
}

func TestConfigCommands(t *testing.T) {
	dir := isolateConfig(t)

	if _, err := execute(t, "config", "set", "variant", "gemini-cli"); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	out, err := execute(t, "config", "get", "variant")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "gemini-cli" {
		t.Errorf("config get variant = %q, want gemini-cli", strings.TrimSpace(out))
	}

	if _, err := execute(t, "config", "set", "variant", "nope"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, err := execute(t, "config", "set", "colour", "red"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestVersionCommand(t *testing.T) {
	isolateConfig(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "today"

	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "skillpack version 1.2.3 (commit: abc, built: today)")
	assertContains(t, out, "schema_version >= 1.0, < 2.0")
}

func TestDoctorCommand(t *testing.T) {
	isolateConfig(t)

	out, err := execute(t, "doctor")
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	assertContains(t, out, "default variant claude-code")
	assertContains(t, out, "[ OK ] antigravity uses template set antigravity")
	assertContains(t, out, "No problems found")
}

func TestDoctorCommand_UnknownTemplateSet(t *testing.T) {
	dir := isolateConfig(t)
	file := filepath.Join(dir, "variants.yaml")
	writeFile(t, file, "schema_version: \"1.0\"\nvariants:\n  - name: internal\n    templates: missing\n")
	t.Setenv("SKILLPACK_VARIANTS_FILE", file)

	out, err := execute(t, "doctor")
	if err == nil {
		t.Fatal("expected doctor to report a problem")
	}
	assertContains(t, out, `[FAIL] internal refers to unknown template set "missing"`)
	assertContains(t, out, "1 problem(s) found")
}

// ─── Test Helpers ──────────────────────────────────────────────────

// execute runs the root command with args and returns its combined output.
// Flag values are reset first because the command tree is package-global.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SKILLPACK_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func writeSkill(t *testing.T, parent, name, manifest string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	writeFile(t, filepath.Join(dir, "SKILL.md"), manifest)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, content)
	}
}
