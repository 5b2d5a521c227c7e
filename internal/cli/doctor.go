package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/config"
	"github.com/agentx-labs/skillpack/internal/scaffold"
	"github.com/agentx-labs/skillpack/internal/variant"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local setup",
	Long:  `Check the config directory and file, the variants file, the default variant, the output directory and the template sets each variant refers to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		problems := config.Check(out, doctorFix)

		fmt.Fprintln(out, "\nTemplate check:")
		if r, err := openRegistry(); err == nil {
			problems += checkTemplateSets(cmd, r)
		}

		if problems > 0 {
			fmt.Fprintln(out, failure(fmt.Sprintf("\n%d problem(s) found", problems)))
			return errReported
		}
		fmt.Fprintln(out, success("\nNo problems found"))
		return nil
	},
}

func checkTemplateSets(cmd *cobra.Command, r *variant.Registry) int {
	sets := make(map[string]bool)
	for _, name := range scaffold.TemplateSets() {
		sets[name] = true
	}

	problems := 0
	for _, v := range r.All() {
		if sets[v.TemplateSet()] {
			fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] %s uses template set %s\n", v.Name, v.TemplateSet())
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %s refers to unknown template set %q\n", v.Name, v.TemplateSet())
		problems++
	}
	return problems
}
