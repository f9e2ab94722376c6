// internal/cli/enter.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	devenv "github.com/CathalMullan/http-body"
	"github.com/CathalMullan/http-body/pkg/platform"
)

var enterPrintEnv bool

var enterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Enter the default development shell",
	Long: `Realize devShells.<system>.default for the current platform and
drop into it: the pinned base snapshot is fetched into the cache
(once per pin), the shell's environment variables are applied, the
resolved packages are put on PATH, and $SHELL is started.`,
	RunE: runEnter,
}

func init() {
	enterCmd.Flags().BoolVar(&enterPrintEnv, "print-env", false, "print the shell's environment instead of entering it")
}

func runEnter(cmd *cobra.Command, args []string) error {
	system, err := targetSystem()
	if err != nil {
		return err
	}

	evaluator, err := devenv.Load(config)
	if err != nil {
		return err
	}

	desc, err := evaluator.EvalSystem(system)
	if err != nil {
		return err
	}

	if enterPrintEnv {
		for _, name := range desc.EnvNames() {
			fmt.Printf("export %s=%q\n", name, desc.Env[name])
		}
		fmt.Printf("export PATH=%q\n", strings.Join(desc.BinPaths(), ":")+":$PATH")
		return nil
	}

	if _, err := evaluator.FetchBase(context.Background()); err != nil {
		return fmt.Errorf("fetching base snapshot: %w", err)
	}

	userShell := os.Getenv("SHELL")
	if userShell == "" {
		userShell = "/bin/sh"
	}

	environ := os.Environ()
	for _, name := range desc.EnvNames() {
		environ = append(environ, name+"="+desc.Env[name])
	}
	environ = append(environ, "PATH="+strings.Join(desc.BinPaths(), ":")+":"+os.Getenv("PATH"))

	fmt.Printf("Entering %s (rust %s)\n", desc.Summary(), desc.Toolchain.Version)

	proc := exec.Command(userShell)
	proc.Env = environ
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return proc.Run()
}

// targetSystem returns the system to evaluate for: the --system flag
// when given, the detected host system otherwise.
func targetSystem() (platform.System, error) {
	if systemFlag != "" {
		return platform.System(systemFlag), nil
	}

	system, err := platform.Detect()
	if err != nil {
		return "", fmt.Errorf("detecting platform: %w", err)
	}
	return system, nil
}
