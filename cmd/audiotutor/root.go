package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "audiotutor",
		Short:         "Turn study material into narrated audio and a short summary",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the YAML configuration file")

	root.AddCommand(newServeCommand(&cfgFile))
	root.AddCommand(newProcessCommand(&cfgFile))

	return root
}
