package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lechatnoir.dev/internal/build"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildOutput != "" {
			cfg.Build.Output = buildOutput
		}

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		b := &build.Builder{
			Site:       a.site,
			ContentDir: cfg.ContentDir,
			OutputDir:  cfg.Build.Output,
			Include:    cfg.Build.Include,
			Exclude:    cfg.Build.Exclude,
			Root:       cfg.Site.Root,
			Logger:     logger,
		}
		report, err := b.Build(cmd.Context())
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages, %d components and %d assets to %s\n",
			len(report.Pages), len(report.Components), report.Assets, cfg.Build.Output)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides build.output)")
	rootCmd.AddCommand(buildCmd)
}
