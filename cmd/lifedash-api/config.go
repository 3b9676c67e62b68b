package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the merged configuration (defaults, config file, .env and LIFEDASH_* variables) as YAML.`,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := *cfg
	if out.Server.APIToken != "" {
		out.Server.APIToken = "<redacted>"
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}
