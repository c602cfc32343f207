package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"dircmp/internal/compare"
	"dircmp/internal/config"
	"dircmp/internal/progress"
	"dircmp/internal/render"
)

type rootOptions struct {
	configPath string
	workers    int
	verbose    bool
	color      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dircmp",
		Short: "Compare directory trees and files by content.",
		Long: `Compare two directory trees by CRC-32 content checksum, or two files
line by line with a minimal edit script.

Exit status is 0 when nothing differs, 1 when differences were found and
2 on errors.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "dircmp.yaml", "Config file path (.yaml or .toml)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Number of worker goroutines (0 = CPU count)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log skipped files and directories to stderr")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "Color output: auto, always or never")

	rootCmd.AddCommand(
		newScanCmd(opts),
		newFoldersCmd(opts),
		newFilesCmd(opts),
	)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return rootCmd
}

// settings merges the config file with flags given on the command line.
func (o *rootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = o.workers
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = o.color
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) logger(cmd *cobra.Command) *log.Logger {
	if !o.verbose {
		return nil
	}
	return log.New(cmd.ErrOrStderr(), "dircmp: ", log.LstdFlags)
}

// progressBar draws on stderr only when it is a terminal and stdout is not
// carrying machine-readable output.
func progressBar(cmd *cobra.Command, jsonOut bool) *progress.Bar {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && !jsonOut {
		return progress.ForTerminal(f)
	}
	return progress.New(io.Discard, false)
}

func newComparator(cmd *cobra.Command, o *rootOptions, cfg *config.Config, bar *progress.Bar) *compare.Comparator {
	logger := o.logger(cmd)
	c := compare.New(compare.Options{
		Workers:  cfg.Workers,
		Exclude:  cfg.Exclude,
		Logger:   logger,
		Observer: bar,
	})
	if logger != nil {
		logger.Printf("using %d workers", c.Workers())
	}
	return c
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *render.Renderer {
	return render.New(cmd.OutOrStdout(), cfg.Color)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
