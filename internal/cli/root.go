package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vyper-tools/vyperdoc/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vyperdoc",
	Short: "Generate Sphinx documentation for Vyper smart contracts",
	Long: `Vyperdoc extracts the public interface of Vyper smart contracts and
turns it into a browsable Sphinx documentation site.

It scans a contracts directory for .vy sources, extracts enums,
structs, events, constants, state variables and functions together
with their docstrings, writes one reStructuredText page per contract,
and optionally runs sphinx-build to produce HTML.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .vyperdoc.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig loads the vyperdoc configuration, honoring the --config flag.
// Without the flag the working directory is searched for .vyperdoc.yml and
// defaults apply when no file is present.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.LoadConfigFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
		}
		return cfg, nil
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
