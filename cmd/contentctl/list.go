package main

import (
	"github.com/spf13/cobra"
	"github.com/user/content-system/internal/content"
)

var listFlags content.Params

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List content with the same filters as GET /content",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.IntVar(&listFlags.Page, "page", 1, "1-based page number")
	f.IntVar(&listFlags.PageSize, "page-size", 0, "items per page (default LIST_DEFAULT_PAGE_SIZE)")
	f.StringVar(&listFlags.Year, "year", "", "release year YYYY or range YYYY-YYYY")
	f.StringVar(&listFlags.Language, "language", "", "comma-separated language names or codes, any match")
	f.StringVar(&listFlags.Sort, "sort", "", "up to two of release_date, rating, title, vote_count with :asc or :desc")
	f.BoolVar(&listFlags.IncludeMeta, "include-meta", false, "include id, is_deleted and timestamps")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	params := listFlags
	if params.PageSize == 0 {
		params.PageSize = cfg.List.DefaultPageSize
	}

	resp, err := content.NewService(db, cfg.List).List(cmd.Context(), params)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp)
}
