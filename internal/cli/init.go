package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/branding"
	"github.com/agentx-labs/skillpack/internal/scaffold"
)

var (
	initPath    string
	initVariant string
)

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "Directory in which to create the skill (required)")
	initCmd.Flags().StringVar(&initVariant, "variant", "", "Variant whose template set is used (default from config, else claude-code)")
	_ = initCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name> --path <dir>",
	Short: "Scaffold a new skill from a template",
	Long: `Create <dir>/<name> from the selected variant's template set. The generated
SKILL.md contains [TODO: markers that must be filled in before the skill
validates.

Examples:
  skillpack init lesson-plan --path .claude/skills
  skillpack init report-writer --path ~/.gemini/skills --variant gemini-cli`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := resolveVariant(initVariant)
		if err != nil {
			return err
		}

		result, err := scaffold.Create(args[0], initPath, v)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%sCreated skill %s at %s/\n", success("✓ "), args[0], result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(out, "\n"+headerStyle.Render("Warnings:"))
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
		}

		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Fill in the [TODO: items in SKILL.md, starting with the description")
		fmt.Fprintln(out, "  2. Customize or delete the example resource files")
		fmt.Fprintf(out, "  3. Run '%s validate %s' to check the skill\n", branding.CLIName(), result.OutputDir)
		return nil
	},
}
