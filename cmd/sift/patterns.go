package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/sift/internal/amount"
	"github.com/Veraticus/sift/internal/cli"
	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/loader"
	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns <file>",
		Short: "Group the values of one column by amount pattern",
		Long: `Group the values of a single column by the shape of their amounts.

Digits, decimal points and spaces are removed from every value, so
"$1,200.00" and "$3,510.99" share the pattern "$," while "-4.50" becomes "-".
Use --distinct to list the distinct values instead.`,
		Example: `  sift patterns statement.csv --range D2:D40
  sift patterns export.xlsx --sheet Transactions --range C2:C500 --distinct`,
		Args: cobra.ExactArgs(1),
		RunE: runPatterns,
	}

	cmd.Flags().StringP("range", "r", "", "single-column range such as D2:D40 (required)")
	cmd.Flags().String("sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().Bool("distinct", false, "list distinct values instead of patterns")
	cmd.Flags().Bool("json", false, "write output as JSON")
	_ = cmd.MarkFlagRequired("range")

	return cmd
}

func runPatterns(cmd *cobra.Command, args []string) error {
	columnRange, _ := cmd.Flags().GetString("range")
	sheetName, _ := cmd.Flags().GetString("sheet")
	distinct, _ := cmd.Flags().GetBool("distinct")
	asJSON, _ := cmd.Flags().GetBool("json")

	g, err := loadSheet(cmd.Context(), args[0], sheetName)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if distinct {
		values, err := amount.GroupColumn(g, columnRange)
		if err != nil {
			return rangeError(columnRange, err)
		}
		if asJSON {
			return cli.WriteJSON(w, values)
		}
		return cli.RenderValues(w, values)
	}

	patterns, err := amount.GroupAmountPatterns(g, columnRange)
	if err != nil {
		return rangeError(columnRange, err)
	}
	if asJSON {
		return cli.WriteJSON(w, patterns)
	}
	return cli.RenderPatterns(w, patterns)
}

// loadSheet returns the named sheet of path, or its first sheet when name is
// empty.
func loadSheet(ctx context.Context, path, name string) (grid.Grid, error) {
	sheets, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return sheets[0].Grid, nil
	}

	names := make([]string, len(sheets))
	for i, sh := range sheets {
		if strings.EqualFold(sh.Name, name) {
			return sh.Grid, nil
		}
		names[i] = sh.Name
	}
	return nil, common.NewUserError(
		fmt.Sprintf("sheet %q not found (available: %s)", name, strings.Join(names, ", ")),
		common.ErrNotFound)
}

func rangeError(columnRange string, err error) error {
	if common.IsCallerError(err) {
		return common.NewUserError(fmt.Sprintf("cannot use range %q", columnRange), err)
	}
	return err
}
