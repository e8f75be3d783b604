package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/youruser/popmerge/internal/config"
	imagepkg "github.com/youruser/popmerge/internal/image"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *ctx.configFlag
			if path == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := ctx.cfgPath
			if !ctx.cfgExists {
				source += " (not found, using defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", source)
			fmt.Fprintln(cmd.OutOrStdout(), renderConfig(cfg))
			return nil
		},
	}
}

func renderConfig(cfg *config.Config) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Key", "Value"})
	tw.AppendRows([]table.Row{
		{"server.bind", cfg.Server.Bind},
		{"server.public_url", cfg.Server.PublicURL},
		{"server.max_upload_mb", strconv.Itoa(cfg.Server.MaxUploadMB)},
		{"session.ttl_minutes", strconv.Itoa(cfg.Session.TTLMinutes)},
		{"merge.min_interval_ms", strconv.Itoa(cfg.Merge.MinIntervalMS)},
		{"merge.burst", strconv.Itoa(cfg.Merge.Burst)},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.dir", cfg.Logging.Dir},
		{"ui.language", cfg.UI.Language},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"canvas (fixed)", fmt.Sprintf("%dx%d", imagepkg.CanvasWidth, imagepkg.CanvasHeight)},
		{"jpeg quality (fixed)", strconv.Itoa(imagepkg.DefaultQuality)},
	})
	return tw.Render()
}
