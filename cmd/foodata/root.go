package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/railway/config"
	"github.com/kbukum/railway/version"
)

type rootOptions struct {
	configFile string
	envFile    string
	envPrefix  string
}

func (o *rootOptions) loadConfig() (*config.PipelineConfig, error) {
	opts := []config.LoaderOption{config.WithEnvPrefix(o.envPrefix)}
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		opts = append(opts, config.WithEnvFile(o.envFile))
	}
	return config.LoadPipelineConfig("foodata", opts...)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "foodata",
		Short:         "Produce FooData through a classified pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Get().String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file")
	rootCmd.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", "FOODATA", "Prefix of environment variable overrides")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newKindsCommand())
	return rootCmd
}
