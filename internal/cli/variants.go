package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/variant"
)

var variantsJSON bool

func init() {
	variantsListCmd.Flags().BoolVar(&variantsJSON, "json", false, "Output as JSON")
	variantsCmd.AddCommand(variantsListCmd)
	variantsCmd.AddCommand(variantsSchemaCmd)
	rootCmd.AddCommand(variantsCmd)
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Inspect packaging targets",
	Long: `A variant names the rules applied to a skill for one packaging target: the
header keys it accepts, an optional line ceiling, recommended phrases and the
template set used by init. Built-in variants can be overridden or extended
with --variants-file.`,
}

var variantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		all := r.All()

		if variantsJSON {
			data, err := json.MarshalIndent(all, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling variants: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tALLOWED KEYS\tLINE LIMIT\tHINTS")
		for _, v := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				v.Name,
				strings.Join(v.AllowList(), ","),
				lineLimit(v),
				orDash(strings.Join(v.DescriptionHints, ",")))
		}
		return w.Flush()
	},
}

var variantsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for variants files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := variant.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func lineLimit(v *variant.Variant) string {
	mode := v.EffectiveLineLimitMode()
	if mode == variant.LineLimitOff {
		return "-"
	}
	return strconv.Itoa(v.LineLimit) + " (" + string(mode) + ")"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
