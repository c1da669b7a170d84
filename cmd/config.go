package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/notemark/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var defaults bool
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as YAML",
		Long: `Dump prints the configuration in effect after the --config file has been
applied over the defaults. With --defaults it prints the expanded default
configuration, a starting point for a custom file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			if defaults {
				data, err = config.Prepare()
			} else {
				data, err = config.Dump(a.cfg)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	dump.Flags().BoolVar(&defaults, "defaults", false, "Print the default configuration")

	cmd.AddCommand(dump)
	return cmd
}
