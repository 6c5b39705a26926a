package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/logging"
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Configuration keys, also usable as SIMCHECK_<KEY> environment variables
const (
	keyDataDir      = "data_dir"
	keySimulator    = "simulator"
	keySimulatorArg = "simulator_args"
	keyCatalog      = "catalog"
	keyColor        = "color"
	keyLogLevel     = "log_level"
	keyLogFile      = "log_file"
	keyKeepGoing    = "keep_going"
)

type settings struct {
	DataDir       string
	Simulator     string
	SimulatorArgs []string
	Catalog       string
	Color         string
	LogLevel      string
	LogFile       string
	KeepGoing     bool
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		DataDir:       v.GetString(keyDataDir),
		Simulator:     v.GetString(keySimulator),
		SimulatorArgs: v.GetStringSlice(keySimulatorArg),
		Catalog:       v.GetString(keyCatalog),
		Color:         v.GetString(keyColor),
		LogLevel:      v.GetString(keyLogLevel),
		LogFile:       v.GetString(keyLogFile),
		KeepGoing:     v.GetBool(keyKeepGoing),
	}
}

// environment is everything a command needs to run tests
type environment struct {
	catalog  *catalog.Catalog
	fixtures *catalog.Fixtures
	invoker  *simulator.Invoker
	logger   *slog.Logger
	colored  bool
	close    func() error
}

func newEnvironment(s settings, stdout io.Writer) (*environment, error) {
	colored, err := colorEnabled(s.Color, stdout)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{Level: s.LogLevel, File: s.LogFile})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrConfiguration, err)
	}

	fixtures := catalog.NewOsFixtures(s.DataDir)

	tests := catalog.Default()
	if s.Catalog != "" {
		tests, err = catalog.Load(fixtures.Fs(), s.Catalog)
		if err != nil {
			closeLog()
			return nil, err
		}
	}

	invoker := simulator.NewInvoker(s.Simulator, logger)
	invoker.Prefix = s.SimulatorArgs

	logger.Debug("configuration",
		"data_dir", fixtures.Dir(),
		"simulator", invoker.Binary,
		"simulator_args", strings.Join(invoker.Prefix, " "),
		"catalog", s.Catalog,
		"keep_going", s.KeepGoing)

	return &environment{
		catalog:  tests,
		fixtures: fixtures,
		invoker:  invoker,
		logger:   logger,
		colored:  colored,
		close:    closeLog,
	}, nil
}

// colorEnabled decides whether output to w is colored. "auto" colors terminals only.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		file, ok := w.(*os.File)
		return ok && term.IsTerminal(int(file.Fd())), nil
	default:
		return false, fmt.Errorf("%w: unknown color mode '%s' (expected auto, always or never)", catalog.ErrConfiguration, mode)
	}
}
