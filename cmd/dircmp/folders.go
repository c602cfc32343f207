package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dircmp/internal/compare"
	"dircmp/internal/config"
	"dircmp/internal/walker"
	"dircmp/internal/watch"
)

func newFoldersCmd(root *rootOptions) *cobra.Command {
	var ignoreHidden, jsonOut, watchMode bool

	cmd := &cobra.Command{
		Use:   "folders <dirA> <dirB>",
		Short: "Classify every file of two trees as added, deleted, modified or same.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ignore-hidden") {
				cfg.IgnoreHidden = ignoreHidden
			}

			bar := progressBar(cmd, jsonOut)
			c := newComparator(cmd, root, cfg, bar)
			defer c.Close()

			run := func() (*compare.FolderDiff, error) {
				bar.Reset()
				result := c.CompareFolders(args[0], args[1], cfg.IgnoreHidden)
				bar.Finish()

				if jsonOut {
					if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
						return nil, err
					}
				} else {
					fmt.Fprint(cmd.OutOrStdout(), newRenderer(cmd, cfg).Folders(&result))
				}
				return &result, nil
			}

			result, err := run()
			if err != nil {
				return err
			}

			if watchMode {
				return watchFolders(cmd, root, cfg, args, run)
			}

			switch {
			case result.Error != "":
				return exitStatus(exitError)
			case result.HasChanges():
				return exitStatus(exitChanges)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "Skip hidden files and directories")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Re-run the comparison whenever either tree changes")
	return cmd
}

// watchSkip matches the paths a comparison with cfg would not scan, so that
// changes to them do not trigger a re-run.
func watchSkip(dirs []string, cfg *config.Config) func(path string) bool {
	return func(path string) bool {
		for _, dir := range dirs {
			if walker.Excluded(dir, path, cfg.Exclude) {
				return true
			}
			if cfg.IgnoreHidden && walker.Hidden(dir, path) {
				return true
			}
		}
		return false
	}
}

// watchFolders re-runs the comparison after each burst of changes until
// interrupted.
func watchFolders(cmd *cobra.Command, root *rootOptions, cfg *config.Config, dirs []string, run func() (*compare.FolderDiff, error)) error {
	debounce, err := cfg.DebounceInterval()
	if err != nil {
		return err
	}

	w, err := watch.New(dirs, watch.Options{
		Debounce: debounce,
		Logger:   root.logger(cmd),
		Skip:     watchSkip(dirs, cfg),
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes, press Ctrl+C to stop.")

	var runErr error
	err = w.Run(ctx, func() {
		fmt.Fprintln(cmd.OutOrStdout())
		if _, err := run(); err != nil {
			runErr = err
			stop()
		}
	})
	if runErr != nil {
		return runErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
