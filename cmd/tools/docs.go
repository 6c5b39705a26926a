package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/simcheck/pkg/catalog"
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/Manu343726/simcheck/pkg/utils"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var supportedModules = map[string]func() (string, error){
	"simulator.flags": simulatorFlagsDoc,
	"catalog.format":  catalogFormatDoc,
}

func moduleNames() []string {
	names := utils.Keys(supportedModules)
	slices.Sort(names)
	return names
}

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs module",
		Short: "Show simcheck documentation",
		Long: `Dumps the documentation of the specified simcheck module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(utils.Map(moduleNames(), func(module string) string { return "  " + module }), "\n"),
		Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
		ValidArgs: moduleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := supportedModules[args[0]]()
			if err != nil {
				return err
			}

			outputFile, _ := cmd.Flags().GetString("output")
			if outputFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}

			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("error creating file: %w", err)
			}
			defer file.Close()

			_, err = fmt.Fprintln(file, doc)
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")

	return cmd
}

func simulatorFlagsDoc() (string, error) {
	rows := [][2]string{
		{simulator.FlagExecute, "run the object file instead of only decoding it"},
		{simulator.FlagShowIP, "include the instruction pointer in the execution trace"},
		{simulator.FlagShowEstimates, "include cycle estimates in the execution trace"},
		{simulator.FlagDumpMemory + " <path>", "write the final memory contents to <path>"},
	}

	var builder strings.Builder
	builder.WriteString("Simulator command line:\n\n")
	builder.WriteString("  <simulator> [flags...] <object>\n\n")
	builder.WriteString("Flags, always passed in this order:\n\n")
	for _, row := range rows {
		fmt.Fprintf(&builder, "  %-26s %s\n", row[0], row[1])
	}
	builder.WriteString("\nExit status 0 means the output is on stdout. Any other status is a failure, stderr is reported as is.")

	return builder.String(), nil
}

func catalogFormatDoc() (string, error) {
	contents, err := catalog.Default().Marshal()
	if err != nil {
		return "", err
	}

	return "Catalog files list test categories in run order. This is the built in catalog:\n\n" +
		strings.TrimRight(string(contents), "\n") + `

Category fields:
  name            unique category name
  mode            decode or execute
  show_ip         pass ` + simulator.FlagShowIP + `
  show_estimates  pass ` + simulator.FlagShowEstimates + `
  dump_memory     pass ` + simulator.FlagDumpMemory + ` with this path
  keep_comments   compare reference comments too
  tests           test identifiers, a test belongs to one category only

Every execute category checks decoding of the same test first.`, nil
}
