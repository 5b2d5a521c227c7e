package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/skillpack/internal/branding"
	"github.com/agentx-labs/skillpack/internal/config"
	"github.com/agentx-labs/skillpack/internal/variant"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// variantsFile is the global --variants-file flag.
var variantsFile string

// errReported marks failures whose details were already printed.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates agent skill directories against the rules of a packaging
target (variant) and packages valid skills into deterministic .skill archives.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&variantsFile, "variants-file", "", "YAML or TOML file with additional variants")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), failure("Error: "+err.Error()))
	}
	return err
}

// openRegistry returns the built-in variants overlaid with the variants
// file named by --variants-file or the variants_file config key.
func openRegistry() (*variant.Registry, error) {
	path := variantsFile
	if path == "" {
		path = config.Get(config.KeyVariantsFile)
	}
	return variant.Open(path)
}

// resolveVariant picks the variant named by flag, falling back to the
// configured default.
func resolveVariant(flag string) (*variant.Variant, error) {
	name := flag
	if name == "" {
		name = config.Get(config.KeyVariant)
	}
	if name == "" {
		name = variant.DefaultName
	}

	r, err := openRegistry()
	if err != nil {
		return nil, err
	}
	return r.Lookup(name)
}
