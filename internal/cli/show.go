// internal/cli/show.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	devenv "github.com/CathalMullan/http-body"
)

var showPackages bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Enumerate the development shells per platform",
	Long: `Evaluate the environment registry and list every
devShells.<system>.<name> output. Platforms whose shell failed to
resolve are listed with their error instead of being omitted.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showPackages, "packages", false, "list each shell's resolved packages")
}

func runShow(cmd *cobra.Command, args []string) error {
	evaluator, err := devenv.Load(config)
	if err != nil {
		return err
	}

	reg, err := evaluator.Eval()
	if err != nil {
		return err
	}

	fmt.Println("devShells")
	for _, system := range reg.Systems() {
		for _, name := range reg.Names(system) {
			entry, err := reg.Entry(system, name)
			if err != nil {
				return err
			}

			if entry.Err != nil {
				fmt.Printf("  %s.%s: error: %v\n", system, name, entry.Err)
				continue
			}

			desc := entry.Descriptor
			fmt.Printf("  %s: rust %s (%s channel, %s profile), %d packages\n",
				desc.Summary(), desc.Toolchain.Version, desc.Toolchain.Channel, desc.Toolchain.Profile, len(desc.Packages))

			if showPackages {
				for _, pkg := range desc.Packages {
					fmt.Printf("      %s %s\n", pkg.Name, pkg.Version)
				}
				for _, name := range desc.EnvNames() {
					fmt.Printf("      $%s = %s\n", name, desc.Env[name])
				}
			}
		}
	}

	return nil
}
