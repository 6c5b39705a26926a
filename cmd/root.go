package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/simcheck/cmd/tools"
	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/runner"
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Process exit codes
const (
	ExitSuccess = 0
	// ExitFailure is returned when a test fails: mismatch, missing fixture or simulator error
	ExitFailure = 1
	// ExitConfiguration is returned for unknown tests, bad configuration and bad usage
	ExitConfiguration = 2
)

// NewRootCommand returns the simcheck command tree. Every call returns an independent
// tree with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "simcheck [test-id]",
		Short: "Golden output regression tests for an instruction set simulator",
		Long: `simcheck runs the simulator on every test object file and compares its output
against hand written reference listings (.asm) and execution traces (.txt).

Tests are grouped in categories. Decode categories only check disassembly. Execute
categories first check disassembly of the same object, then run it and compare the
execution trace.

Without arguments every test of the catalog runs in order and the first failure stops
the run. With a test identifier only that test runs.

Exit codes:
  0 - Every test passed
  1 - A test failed (output mismatch, missing fixture, simulator error)
  2 - Unknown test, invalid configuration or invalid usage

Examples:
  simcheck
  simcheck 43
  simcheck --simulator ./build/sim8086 --data-dir ./data
  simcheck --keep-going`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, v, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .simcheck.yaml in the working directory or $HOME)")
	flags.StringP("data-dir", "d", catalog.DefaultDir, "fixture directory")
	flags.StringP("simulator", "s", simulator.DefaultBinary, "simulator executable")
	flags.StringArray("simulator-arg", nil, "argument passed to the simulator before its flags (repeatable)")
	flags.String("catalog", "", "catalog file (default is the built in catalog)")
	flags.String("color", "auto", "colored output: auto, always, never")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-file", "", "also write debug logs to this file as JSON")
	cmd.Flags().BoolP("keep-going", "k", false, "run every test and report all failures instead of stopping at the first one")

	bindFlags(v, cmd)

	cmd.AddCommand(newListCommand(v), newResolveCommand(v), tools.NewToolsCommand())

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	bindings := map[string]string{
		keyDataDir:      "data-dir",
		keySimulator:    "simulator",
		keySimulatorArg: "simulator-arg",
		keyCatalog:      "catalog",
		keyColor:        "color",
		keyLogLevel:     "log-level",
		keyLogFile:      "log-file",
	}

	for key, flag := range bindings {
		cobra.CheckErr(v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)))
	}
	cobra.CheckErr(v.BindPFlag(keyKeepGoing, cmd.Flags().Lookup("keep-going")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("SIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Search config in the working directory and home directory with name ".simcheck" (without extension).
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".simcheck")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: cannot read config file: %v", catalog.ErrConfiguration, err)
	}

	return nil
}

// ExitCode returns the process exit code for the error returned by the root command
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, runner.ErrMismatch),
		errors.Is(err, catalog.ErrUnresolvedFixture),
		errors.Is(err, simulator.ErrInvocation):
		return ExitFailure
	default:
		return ExitConfiguration
	}
}

// reportedError is a test failure the runner reporter already printed
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	os.Exit(runRoot(NewRootCommand(), os.Stderr))
}

// runRoot executes the command tree and returns the process exit code. Errors the
// reporter did not print are written to stderr.
func runRoot(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()

	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return ExitCode(err)
}
