// Package runner orchestrates golden comparisons: for each test it resolves fixtures,
// normalizes the reference, runs the simulator and diffs both texts.
//
// The runner never exits the process. Failures are reported as they happen and
// returned as errors; deciding the exit status is up to the caller.
package runner

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/golden"
	"github.com/Manu343726/simcheck/pkg/logging"
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/Manu343726/simcheck/pkg/utils"
)

// Simulator runs the simulator under test on an object file
type Simulator interface {
	Run(objectPath string, profile simulator.Profile) (string, error)
}

// Policy decides what happens after a failed test
type Policy int

const (
	// StopOnFirstFailure stops the run at the first failure
	StopOnFirstFailure Policy = iota
	// CollectFailures runs every test and returns all failures together
	CollectFailures
)

func (p Policy) String() string {
	switch p {
	case StopOnFirstFailure:
		return "stop-on-first-failure"
	case CollectFailures:
		return "collect-failures"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Summary counts the tests of a run
type Summary struct {
	Passed int
	Failed int
}

// Total returns the number of tests that were run
func (s Summary) Total() int {
	return s.Passed + s.Failed
}

// Config contains the collaborators of a runner. Catalog, Fixtures and Simulator are
// required, everything else has a default.
type Config struct {
	Catalog    *catalog.Catalog
	Fixtures   *catalog.Fixtures
	Simulator  Simulator
	Normalizer *golden.Normalizer
	Differ     *golden.Differ
	Reporter   Reporter
	Policy     Policy
	Logger     *slog.Logger
}

// Runner runs golden comparisons, one test at a time
type Runner struct {
	catalog    *catalog.Catalog
	fixtures   *catalog.Fixtures
	simulator  Simulator
	normalizer golden.Normalizer
	differ     *golden.Differ
	reporter   Reporter
	policy     Policy
	logger     *slog.Logger
}

// New returns a runner for the given configuration
func New(config Config) (*Runner, error) {
	if config.Catalog == nil {
		return nil, errors.New("runner: missing catalog")
	}
	if config.Fixtures == nil {
		return nil, errors.New("runner: missing fixtures")
	}
	if config.Simulator == nil {
		return nil, errors.New("runner: missing simulator")
	}

	r := &Runner{
		catalog:    config.Catalog,
		fixtures:   config.Fixtures,
		simulator:  config.Simulator,
		normalizer: golden.DefaultNormalizer,
		differ:     config.Differ,
		reporter:   config.Reporter,
		policy:     config.Policy,
		logger:     config.Logger,
	}

	if config.Normalizer != nil {
		r.normalizer = *config.Normalizer
	}
	if r.differ == nil {
		r.differ = golden.NewDiffer(false)
	}
	if r.reporter == nil {
		r.reporter = Discard{}
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}

	return r, nil
}

// RunOne runs a single test. Unknown tests return catalog.ErrConfiguration before
// anything is run.
func (r *Runner) RunOne(id int) error {
	partition, err := r.catalog.Lookup(id)
	if err != nil {
		return err
	}

	return r.runTest(partition, id)
}

// RunAll runs every test of the catalog in declaration order. With StopOnFirstFailure
// the first failure ends the run, with CollectFailures all failures are joined.
func (r *Runner) RunAll() (Summary, error) {
	var summary Summary
	var failures []error

	for _, partition := range r.catalog.Partitions() {
		r.logger.Info("running partition", "partition", partition.Name, "profile", partition.Profile.String(), "tests", len(partition.Tests))

		for _, id := range partition.Tests {
			if err := r.runTest(partition, id); err != nil {
				summary.Failed++

				if r.policy == StopOnFirstFailure {
					return summary, err
				}

				failures = append(failures, err)
				continue
			}

			summary.Passed++
		}
	}

	return summary, errors.Join(failures...)
}

func (r *Runner) runTest(partition catalog.Partition, id int) error {
	r.logger.Debug("running test", "id", id, "partition", partition.Name)

	if partition.VerifiesDecode() {
		fixture, err := r.fixtures.ResolveDecodeReference(id)
		if err != nil {
			return r.fail(id, err)
		}

		if err := r.compare(id, fixture, simulator.DecodeProfile()); err != nil {
			return err
		}
	}

	var fixture catalog.Fixture
	var err error

	switch partition.Profile.Mode {
	case simulator.ModeExecute:
		fixture, err = r.fixtures.ResolveExecReference(id)
	default:
		fixture, err = r.fixtures.ResolveDecodeReference(id)
	}
	if err != nil {
		return r.fail(id, err)
	}

	if err := r.compare(id, fixture, partition.Profile); err != nil {
		return err
	}

	r.reporter.Success(id, fixture.Reference)

	return nil
}

// compare checks one reference against the simulator output for its object file
func (r *Runner) compare(id int, fixture catalog.Fixture, profile simulator.Profile) error {
	r.logger.Debug("comparing", "id", id, "reference", fixture.Reference, "object", fixture.Object, "profile", profile.String())

	raw, err := r.fixtures.ReadFile(fixture.Reference)
	if err != nil {
		return r.fail(id, utils.MakeError(catalog.ErrUnresolvedFixture, "cannot read '%s': %v", fixture.Reference, err))
	}

	expected := r.normalizer.NormalizeText(raw, profile.KeepComments)

	actual, err := r.simulator.Run(fixture.Object, profile)
	if err != nil {
		return r.fail(id, err)
	}

	comparison := r.differ.Compare(expected, actual)
	if !comparison.Matched {
		r.logger.Debug("mismatch", "id", id, "reference", fixture.Reference)
		r.reporter.Failure(id, fixture.Reference, comparison.Diff)

		return &MismatchError{
			ID:        id,
			Reference: fixture.Reference,
			Diff:      comparison.Diff,
		}
	}

	return nil
}

func (r *Runner) fail(id int, err error) error {
	r.logger.Debug("test failed", "id", id, "error", err)
	r.reporter.Error(id, err)
	return err
}
