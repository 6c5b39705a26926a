package cmd

import (
	"fmt"
	"strconv"

	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/golden"
	"github.com/Manu343726/simcheck/pkg/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runTests(cmd *cobra.Command, v *viper.Viper, args []string) error {
	s := loadSettings(v)

	// Parse the identifier before touching anything else
	id, hasID, err := parseTestID(args)
	if err != nil {
		return err
	}

	env, err := newEnvironment(s, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer env.close()

	policy := runner.StopOnFirstFailure
	if s.KeepGoing {
		policy = runner.CollectFailures
	}

	r, err := runner.New(runner.Config{
		Catalog:   env.catalog,
		Fixtures:  env.fixtures,
		Simulator: env.invoker,
		Differ:    golden.NewDiffer(env.colored),
		Reporter:  runner.NewConsoleReporter(cmd.OutOrStdout(), env.colored),
		Policy:    policy,
		Logger:    env.logger,
	})
	if err != nil {
		return err
	}

	if hasID {
		return markReported(r.RunOne(id))
	}

	summary, err := r.RunAll()
	env.logger.Info("run finished", "passed", summary.Passed, "failed", summary.Failed, "total", summary.Total(), "policy", policy.String())

	if s.KeepGoing {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed (%d tests)\n", summary.Passed, summary.Failed, summary.Total())
	}

	return markReported(err)
}

// markReported flags test failures so they are not printed twice. The runner reports
// every failing test; only lookup errors (unknown tests) reach the caller unreported.
func markReported(err error) error {
	if err == nil || ExitCode(err) != ExitFailure {
		return err
	}

	return reportedError{err}
}

// parseTestID returns the test identifier given in the command line, if any
func parseTestID(args []string) (int, bool, error) {
	if len(args) == 0 {
		return 0, false, nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false, fmt.Errorf("%w: invalid test identifier '%s'", catalog.ErrConfiguration, args[0])
	}

	return id, true, nil
}
