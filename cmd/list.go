package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Manu343726/simcheck/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCommand(v *viper.Viper) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the test catalog",
		Long: `Prints every test category in run order with the simulator flags used for it
and its test identifiers. Use --yaml to get the catalog in catalog file format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(loadSettings(v), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer env.close()

			if asYAML {
				contents, err := env.catalog.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(contents)
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tFLAGS\tCOMMENTS\tTESTS")
			for _, partition := range env.catalog.Partitions() {
				flags := strings.Join(partition.Profile.Flags(), " ")
				if flags == "" {
					flags = "-"
				}

				comments := "stripped"
				if partition.Profile.KeepComments {
					comments = "kept"
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", partition.Name, flags, comments, utils.FormatSlice(partition.Tests, " "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog in catalog file format")

	return cmd
}
