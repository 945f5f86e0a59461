package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/meletao/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search records by keyword",
		Long:  "Search journal titles and content, goal titles and descriptions, and gratitude notes for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("kind", "k", "", "Filter by kind: journal, goal or gratitude")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	switch kind {
	case "", store.KindJournal, store.KindGoal, store.KindGratitude:
	default:
		exitErr("search", fmt.Errorf("unknown kind %q", kind))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Query: query,
		Kind:  kind,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		results = []store.SearchResult{}
	}

	output(cmd.OutOrStdout(), results, func(w io.Writer) { writeSearchResults(w, results) })
}
