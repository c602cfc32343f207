package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"dircmp/internal/tree"
	"dircmp/internal/walker"
)

type scanOutput struct {
	Root    string              `json:"root"`
	Summary *tree.Summary       `json:"summary"`
	Files   []walker.FileRecord `json:"files"`
}

func newScanCmd(root *rootOptions) *cobra.Command {
	var ignoreHidden, jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Fingerprint every file below a directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ignore-hidden") {
				cfg.IgnoreHidden = ignoreHidden
			}

			absDirectory, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}

			bar := progressBar(cmd, jsonOut)
			c := newComparator(cmd, root, cfg, bar)
			defer c.Close()

			result, err := c.Scan(absDirectory, cfg.IgnoreHidden)
			bar.Finish()
			if err != nil {
				return err
			}

			summary, err := tree.Build(result)
			if err != nil {
				return err
			}

			if jsonOut {
				files := make([]walker.FileRecord, 0, len(result))
				for _, rec := range result {
					files = append(files, rec)
				}
				sort.Slice(files, func(i, j int) bool {
					return files[i].RelativePath < files[j].RelativePath
				})
				return writeJSON(cmd.OutOrStdout(), scanOutput{Root: absDirectory, Summary: summary, Files: files})
			}

			fmt.Fprint(cmd.OutOrStdout(), newRenderer(cmd, cfg).Scan(absDirectory, result, summary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "Skip hidden files and directories")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the scan as JSON")
	return cmd
}
