package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/archive"
)

var inspectJSON bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.skill>",
	Short: "List the entries of a .skill archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := archive.Inspect(args[0])
		if err != nil {
			return err
		}

		if inspectJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling entries: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MODE\tSIZE\tSHA256\tNAME")
		for _, e := range entries {
			fmt.Fprintf(w, "%o\t%d\t%s\t%s\n", e.Mode, e.Size, e.SHA256, e.Name)
		}
		return w.Flush()
	},
}
