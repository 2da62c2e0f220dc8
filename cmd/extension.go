package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/timaelia1-mgt/patrimoine-immo-sub000/config"
)

// Environment variables passed to an extension. IMMO_PORTFOLIO and
// IMMO_CONFIG_FILE are only set when the matching global flag is.
const (
	EnvPortfolioFile = "IMMO_PORTFOLIO"
	EnvConfigFile    = config.EnvConfigFile
	EnvVerbose       = "IMMO_VERBOSE"
)

// ExtensionPrefix prefixes the name of the external binaries immo runs for
// subcommands it does not know.
const ExtensionPrefix = "immo-"

// RunExtension attempts to find and execute an external immo-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables. The configuration reads
	// them too, so an extension built on this module loads the same files.
	cmd.Env = os.Environ()
	if *portfolioFile != "" {
		cmd.Env = append(cmd.Env, EnvPortfolioFile+"="+*portfolioFile)
	}
	if *configFile != "" {
		cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
