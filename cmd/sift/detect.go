package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/sift/internal/cli"
	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/config"
	"github.com/Veraticus/sift/internal/loader"
	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/Veraticus/sift/internal/tui"
	"github.com/Veraticus/sift/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func detectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <files or globs...>",
		Short: "Detect the table in statement exports",
		Long: `Detect the table in one or more CSV, Excel or OFX files.

Each sheet is searched for its largest block of data. Sparse columns are
dropped, the header row is chosen and every column gets a type and a
schema field. Directories are searched for supported files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDetect,
	}

	defaults := pipeline.DefaultOptions()
	cmd.Flags().Int("start-row", defaults.StartRow, "zero-based row to start searching from")
	cmd.Flags().Int("header-window", defaults.HeaderWindow, "rows scanned when choosing the header")
	cmd.Flags().Float64("threshold", defaults.Threshold, "minimum fraction of filled cells for a column to be kept")
	cmd.Flags().Int("sample-rows", defaults.SampleRows, "rows below the header used to infer column types")

	cmd.Flags().Bool("json", false, "write results as JSON")
	cmd.Flags().Bool("save", false, "save results to the history database")
	cmd.Flags().Bool("view", false, "open the first detected table in the interactive viewer")
	cmd.Flags().String("theme", "default", "viewer theme (default, catppuccin)")

	_ = viper.BindPFlag(config.KeyStartRow, cmd.Flags().Lookup("start-row"))
	_ = viper.BindPFlag(config.KeyHeaderWindow, cmd.Flags().Lookup("header-window"))
	_ = viper.BindPFlag(config.KeyThreshold, cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag(config.KeySampleRows, cmd.Flags().Lookup("sample-rows"))

	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts, err := config.LoadPipelineOptions(viper.GetViper())
	if err != nil {
		return err
	}

	files, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return common.NewUserError("no supported files found", common.ErrEmptyInput)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")
	view, _ := cmd.Flags().GetBool("view")
	themeName, _ := cmd.Flags().GetString("theme")

	var progress *cli.Progress
	if len(files) > 1 && !asJSON {
		progress = cli.NewProgress(cmd.ErrOrStderr(), len(files), "Detecting")
	}

	results, err := detectFiles(ctx, files, opts, progress)
	progress.Finish()
	if err != nil {
		return err
	}

	if save {
		if err := saveResults(ctx, results); err != nil {
			return err
		}
	}

	if err := writeResults(cmd.OutOrStdout(), results, asJSON); err != nil {
		return err
	}

	if view {
		for _, res := range results {
			if res.Found() {
				return tui.Run(ctx, res, themes.ByName(themeName))
			}
		}
		slog.Warn("No table found to view")
	}

	return nil
}

// expandInputs resolves globs and directories to a sorted list of supported
// files. A literal path that does not exist is an error.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok || !loader.Supported(path) {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("invalid pattern %q", arg), err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err != nil {
				return nil, fmt.Errorf("failed to access %s: %w", arg, err)
			}
			matches = []string{arg}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("failed to access %s: %w", match, err)
			}
			if !info.IsDir() {
				add(match)
				continue
			}

			entries, err := os.ReadDir(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read directory %s: %w", match, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					add(filepath.Join(match, entry.Name()))
				}
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// detectFiles runs the pipeline over every sheet of every file in order.
func detectFiles(ctx context.Context, files []string, opts pipeline.Options, progress *cli.Progress) ([]*pipeline.Result, error) {
	p := pipeline.New(nil)
	var results []*pipeline.Result

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		sheets, err := loader.Load(ctx, file)
		if err != nil {
			return results, err
		}

		for _, sh := range sheets {
			res, err := p.Run(ctx, sh.Grid, opts)
			if err != nil {
				return results, fmt.Errorf("failed to detect table in %s: %w", file, err)
			}
			res.Source = file
			res.Sheet = sh.Name

			common.LogDebug("Detected table", common.Fields{
				"source":  file,
				"sheet":   sh.Name,
				"region":  res.Region,
				"columns": len(res.Columns),
			})
			results = append(results, res)
		}

		progress.Step(filepath.Base(file))
	}

	return results, nil
}

func saveResults(ctx context.Context, results []*pipeline.Result) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, res := range results {
		if !res.Found() {
			continue
		}
		id, err := store.SaveIngestion(ctx, res.Ingestion())
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", res.Source, err)
		}
		interrupts.RecordSaved()
		slog.Info("Saved ingestion", "id", id, "source", res.Source, "sheet", res.Sheet)
	}
	return nil
}

func writeResults(w io.Writer, results []*pipeline.Result, asJSON bool) error {
	if asJSON {
		return cli.WriteJSON(w, results)
	}
	for _, res := range results {
		if err := cli.RenderResult(w, res); err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
	}
	return nil
}
