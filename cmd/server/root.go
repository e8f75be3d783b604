package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/youruser/popmerge/internal/config"
)

// commandContext lazily loads configuration shared by subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	cfgPath    string
	cfgExists  bool
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, exists, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg, c.cfgPath, c.cfgExists = cfg, path, exists
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:   "popmerge",
		Short: "Merge two images side by side onto an A3 landscape JPEG",
		Long: `popmerge serves a small web page that places two images side by side
on an A3 landscape canvas (4961x3508) and downloads the result as a JPEG.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	return rootCmd
}
