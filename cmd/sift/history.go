package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/sift/internal/cli"
	"github.com/Veraticus/sift/internal/common"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved detection results",
		Long: `List the results saved with "sift detect --save".

Use --show to see the columns of one result and --delete to remove it.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of results to list")
	cmd.Flags().Int64("show", 0, "show a saved result by ID")
	cmd.Flags().Int64("delete", 0, "delete a saved result by ID")
	cmd.Flags().Bool("json", false, "write output as JSON")
	cmd.MarkFlagsMutuallyExclusive("show", "delete")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	showID, _ := cmd.Flags().GetInt64("show")
	deleteID, _ := cmd.Flags().GetInt64("delete")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	w := cmd.OutOrStdout()

	switch {
	case deleteID != 0:
		if err := store.DeleteIngestion(ctx, deleteID); err != nil {
			return notFound(deleteID, err)
		}
		_, err := fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Deleted result #%d", deleteID)))
		return err

	case showID != 0:
		ing, err := store.GetIngestion(ctx, showID)
		if err != nil {
			return notFound(showID, err)
		}
		if asJSON {
			return cli.WriteJSON(w, ing)
		}
		return cli.RenderIngestion(w, ing)
	}

	ingestions, err := store.ListIngestions(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return cli.WriteJSON(w, ingestions)
	}
	return cli.RenderHistory(w, ingestions)
}

func notFound(id int64, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("no saved result with ID %d", id), err)
	}
	return err
}
