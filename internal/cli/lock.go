// internal/cli/lock.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CathalMullan/http-body/pkg/manifest"
)

var lockWrite bool

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Verify the input pins against the manifest",
	Long: `Check that every input the manifest declares carries a pin in
devshell.lock, and print the pinned revisions. With --write, the
lock file is (re)written, seeding missing files from the built-in
pins.`,
	RunE: runLock,
}

func init() {
	lockCmd.Flags().BoolVar(&lockWrite, "write", false, "write the lock file")
}

func runLock(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(config.ManifestPath)
	if err != nil {
		return err
	}

	lock, err := manifest.LoadLock(config.LockPath)
	if err != nil {
		return err
	}

	if err := lock.Verify(m); err != nil {
		return fmt.Errorf("lock verification failed: %w", err)
	}

	for _, name := range m.InputNames() {
		pin, err := lock.Pin(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s)\n", name, pin.Rev, pin.NarHash)

		for nested, target := range m.Inputs[name].Follows {
			fmt.Printf("  %s follows %s\n", nested, target)
		}
	}

	if lockWrite {
		if err := lock.Save(config.LockPath); err != nil {
			return fmt.Errorf("writing lock: %w", err)
		}
		fmt.Println("Lock file written.")
	}

	return nil
}
