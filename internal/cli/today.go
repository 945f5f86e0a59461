package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's focus",
		Long:  "Show the pinned goal's progress, the latest journal entry, and today's gratitude count and streak.",
		Run:   runToday,
	}

	RootCmd.AddCommand(cmd)
}

func runToday(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sum, err := s.Today(cmd.Context())
	if err != nil {
		exitErr("today", err)
	}

	output(cmd.OutOrStdout(), sum, func(w io.Writer) { writeToday(w, sum) })
}
