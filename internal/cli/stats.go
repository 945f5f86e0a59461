package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and database details",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	output(cmd.OutOrStdout(), stats, func(w io.Writer) {
		fmt.Fprintf(w, "Database   %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(w, "Journal    %d entries\n", stats.JournalEntries)
		fmt.Fprintf(w, "Goals      %d (%d measured)\n", stats.Goals, stats.MeasuredGoals)
		fmt.Fprintf(w, "Gratitude  %d notes, %d today\n", stats.GratitudeEntries, stats.GratitudeToday)
	})
}
