// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CathalMullan/http-body/pkg/core"
)

var (
	cfgFile    string
	systemFlag string
	debug      bool
	config     *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "devshell",
	Short: "Reproducible development environment for http-body",
	Long: `devshell - reproducible development environment for http-body

Evaluates the pinned environment declaration (devshell.toml +
devshell.lock) into one development shell per supported platform:
a pinned Rust toolchain plus the project's formatters and language
servers. 'show' lists the outputs, 'enter' drops you into the
default shell for the current platform.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/devshell/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&systemFlag, "system", "", "evaluate for an explicit system instead of detecting it")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(enterCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
}
