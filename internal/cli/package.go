package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/archive"
	"github.com/agentx-labs/skillpack/internal/config"
	"github.com/agentx-labs/skillpack/internal/registry"
	"github.com/agentx-labs/skillpack/internal/variant"
)

var (
	packageVariant string
	packageExclude []string
	packageAll     bool
	packageQuiet   bool
)

func init() {
	packageCmd.Flags().StringVar(&packageVariant, "variant", "", "Variant whose rules gate packaging (default from config, else claude-code)")
	packageCmd.Flags().StringArrayVar(&packageExclude, "exclude", nil, "Glob of paths to leave out, relative to the skill (repeatable, supports **)")
	packageCmd.Flags().BoolVar(&packageAll, "all", false, "Package every skill found below <dir>")
	packageCmd.Flags().BoolVarP(&packageQuiet, "quiet", "q", false, "Print only the archive path")
	rootCmd.AddCommand(packageCmd)
}

var packageCmd = &cobra.Command{
	Use:   "package <dir> [output-dir]",
	Short: "Validate a skill and write it as a .skill archive",
	Long: `Validate the skill in <dir> and, if it passes, write <output-dir>/<name>.skill.
The output directory defaults to the output_dir config key, else the current
directory. Archives are deterministic: packaging the same files twice yields
identical bytes.

Examples:
  skillpack package ./report-writer ./dist
  skillpack package ./report-writer --exclude '**/__pycache__' --exclude '*.log'
  skillpack package ./skills ./dist --all`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := resolveVariant(packageVariant)
		if err != nil {
			return err
		}

		outDir := config.Get(config.KeyOutputDir)
		if len(args) == 2 {
			outDir = args[1]
		}

		if packageAll {
			return packageTree(cmd, args[0], outDir, v)
		}
		return packageOne(cmd, args[0], outDir, v)
	},
}

func packageOne(cmd *cobra.Command, dir, outDir string, v *variant.Variant) error {
	out := cmd.OutOrStdout()

	var progress io.Writer
	if !packageQuiet {
		progress = &indentWriter{w: out}
	}

	path, err := archive.Package(dir, archive.Options{
		OutputDir: outDir,
		Variant:   v,
		Exclude:   packageExclude,
		Progress:  progress,
	})
	if err != nil {
		var pe *archive.PackageError
		if errors.As(err, &pe) && pe.Kind == archive.ValidationFailed {
			fmt.Fprintln(out, failure("✗ ")+pe.Error())
			return errReported
		}
		return err
	}

	if packageQuiet {
		fmt.Fprintln(out, path)
		return nil
	}
	fmt.Fprintln(out, success("✓ ")+"packaged "+path)
	return nil
}

func packageTree(cmd *cobra.Command, root, outDir string, v *variant.Variant) error {
	skills, err := registry.Discover(root)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return fmt.Errorf("no skills found below %s", root)
	}

	failed := 0
	for _, sd := range skills {
		if !packageQuiet {
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(sd.Rel))
		}
		if err := packageOne(cmd, sd.Path, outDir, v); err != nil {
			if !errors.Is(err, errReported) {
				fmt.Fprintln(cmd.OutOrStdout(), failure("✗ ")+err.Error())
			}
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), dim(fmt.Sprintf("\n%d of %d skill(s) failed to package", failed, len(skills))))
		return errReported
	}
	return nil
}

// indentWriter prefixes each progress line with two spaces.
type indentWriter struct {
	w io.Writer
}

func (iw *indentWriter) Write(p []byte) (int, error) {
	if _, err := fmt.Fprintf(iw.w, "  %s", p); err != nil {
		return 0, err
	}
	return len(p), nil
}
