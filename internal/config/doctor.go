package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/agentx-labs/skillpack/internal/variant"
)

// Check reports on the config directory, the config file, the configured
// variants file and default variant, and the output directory. When fix is
// true it creates missing directories. It returns the number of problems
// left unresolved.
func Check(w io.Writer, fix bool) int {
	problems := 0
	fmt.Fprintln(w, "Config check:")

	if !checkDir(w, Dir(), fix) {
		problems++
	}

	path := FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (defaults apply)\n", path)
	} else if err := readConfigFile(path); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		problems++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s parses\n", path)
	}

	r, err := variant.Open(Get(KeyVariantsFile))
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] variants: %v\n", err)
		problems++
	} else {
		if file := Get(KeyVariantsFile); file != "" {
			fmt.Fprintf(w, "  [ OK ] %s loads\n", file)
		}
		name := Get(KeyVariant)
		if _, err := r.Lookup(name); err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", KeyVariant, err)
			problems++
		} else {
			fmt.Fprintf(w, "  [ OK ] default variant %s\n", name)
		}
	}

	if out := Get(KeyOutputDir); out != "" {
		if !checkDir(w, out, fix) {
			problems++
		}
	}

	return problems
}

func readConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	return v.ReadInConfig()
}

func checkDir(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if !fix {
			fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
			return true
		}
		if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
