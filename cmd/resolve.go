package cmd

import (
	"fmt"

	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResolveCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <test-id>",
		Short: "Show the fixture files of a test",
		Long: `Looks up the category of a test and resolves the fixture files it needs:
the reference listing, the reference trace (execute categories only) and the object file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _, err := parseTestID(args)
			if err != nil {
				return err
			}

			env, err := newEnvironment(loadSettings(v), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer env.close()

			partition, err := env.catalog.Lookup(id)
			if err != nil {
				return err
			}

			fixtures, err := resolveFixtures(env.fixtures, partition, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "test:             %d\n", id)
			fmt.Fprintf(out, "category:         %s (%s)\n", partition.Name, partition.Profile)
			fmt.Fprintf(out, "object:           %s\n", fixtures.Object)
			fmt.Fprintf(out, "decode reference: %s\n", fixtures.DecodeReference)
			if fixtures.ExecReference != "" {
				fmt.Fprintf(out, "exec reference:   %s\n", fixtures.ExecReference)
			}
			return nil
		},
	}
}

// resolveFixtures returns the fixture files the partition needs for the test. Decode
// partitions have no execution trace.
func resolveFixtures(fixtures *catalog.Fixtures, partition catalog.Partition, id int) (catalog.FixtureSet, error) {
	if partition.Profile.Mode == simulator.ModeExecute {
		return fixtures.Resolve(id)
	}

	decode, err := fixtures.ResolveDecodeReference(id)
	if err != nil {
		return catalog.FixtureSet{}, err
	}

	return catalog.FixtureSet{
		DecodeReference: decode.Reference,
		Object:          decode.Object,
	}, nil
}
