package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/registry"
	"github.com/agentx-labs/skillpack/internal/validate"
	"github.com/agentx-labs/skillpack/internal/variant"
	"github.com/agentx-labs/skillpack/internal/watch"
)

var (
	validateVariant string
	validateAll     bool
	validateWatch   bool
)

func init() {
	validateCmd.Flags().StringVar(&validateVariant, "variant", "", "Variant whose rules apply (default from config, else claude-code)")
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate every skill found below <dir>")
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "Re-validate whenever the skill directory changes")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a skill directory against a variant's rules",
	Long: `Validate the SKILL.md in <dir>. Rules run in order and the first failure
is reported. Warn-only findings are printed but do not fail validation.

Examples:
  skillpack validate ./report-writer
  skillpack validate ./skills --all --variant antigravity
  skillpack validate ./report-writer --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateAll && validateWatch {
			return fmt.Errorf("--all and --watch cannot be combined")
		}

		v, err := resolveVariant(validateVariant)
		if err != nil {
			return err
		}

		switch {
		case validateAll:
			return validateTree(cmd, args[0], v)
		case validateWatch:
			return watchSkill(cmd, args[0], v)
		}

		res := validate.Skill(args[0], v)
		printResult(cmd.OutOrStdout(), "", res)
		if !res.OK {
			return errReported
		}
		return nil
	},
}

func validateTree(cmd *cobra.Command, root string, v *variant.Variant) error {
	skills, err := registry.Discover(root)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return fmt.Errorf("no skills found below %s", root)
	}

	failed := 0
	for _, sd := range skills {
		res := validate.Skill(sd.Path, v)
		printResult(cmd.OutOrStdout(), sd.Rel, res)
		if !res.OK {
			failed++
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), dim(fmt.Sprintf("\n%d skill(s) checked, %d failed", len(skills), failed)))
	if failed > 0 {
		return errReported
	}
	return nil
}

func watchSkill(cmd *cobra.Command, dir string, v *variant.Variant) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, dim(fmt.Sprintf("watching %s (Ctrl-C to stop)", dir)))
	return watch.Run(ctx, dir, 0, func() {
		fmt.Fprintln(out, dim(time.Now().Format("15:04:05")))
		printResult(out, "", validate.Skill(dir, v))
	})
}
