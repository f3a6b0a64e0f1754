package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-run/internal/config"
)

var flagDefaults bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the run configuration",
		Long: `Print the run configuration as YAML.

The effective config comes from --config, then ~/.bearrun/configs/bearrun.yaml,
then ./configs/bearrun.yaml, then the built-in defaults. Save the output to
one of those paths to tune a run.

Examples:
  bearrun config
  bearrun config --defaults > ~/.bearrun/configs/bearrun.yaml`,
		Args: cobra.NoArgs,
		Run:  runConfig,
	}

	cmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
	return cmd
}

func runConfig(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	data, err := loadRunConfig(logger).Marshal()
	if err != nil {
		logger.Fatal("cannot encode config", "error", err)
	}
	os.Stdout.Write(data)
}
