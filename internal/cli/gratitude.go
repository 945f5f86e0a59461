package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/meletao/internal/model"
	"github.com/rcliao/meletao/internal/store"
)

func init() {
	gratitudeCmd := &cobra.Command{
		Use:     "gratitude",
		Aliases: []string{"gr", "thanks"},
		Short:   "Note what you are grateful for",
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a gratitude note",
		Long:  "Add a gratitude note. Text can be a positional arg or piped via stdin.",
		Run:   runGratitudeAdd,
	}
	addCmd.Flags().Bool("public", false, "Mark the note public (default private)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List gratitude notes, newest first",
		Run:   runGratitudeList,
	}
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a gratitude note",
		Args:  cobra.ExactArgs(1),
		Run:   runGratitudeRm,
	}

	streakCmd := &cobra.Command{
		Use:   "streak",
		Short: "Show today's count and the current streak",
		Run:   runGratitudeStreak,
	}

	gratitudeCmd.AddCommand(addCmd, listCmd, rmCmd, streakCmd)
	RootCmd.AddCommand(gratitudeCmd)
}

func runGratitudeAdd(cmd *cobra.Command, args []string) {
	public, _ := cmd.Flags().GetBool("public")

	text, err := readContent(args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if strings.TrimSpace(text) == "" {
		exitErr("gratitude add", fmt.Errorf("text is required (positional arg or stdin)"))
	}
	vis := model.VisibilityPrivate
	if public {
		vis = model.VisibilityPublic
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Gratitude.Create(cmd.Context(), store.CreateGratitudeParams{Text: text, Visibility: vis})
	if err != nil {
		exitErr("gratitude add", err)
	}

	output(cmd.OutOrStdout(), n, func(w io.Writer) { writeGratitude(w, []model.GratitudeEntry{n}) })
}

func runGratitudeList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	notes, err := s.Gratitude.List(cmd.Context())
	if err != nil {
		exitErr("gratitude list", err)
	}
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	if notes == nil {
		notes = []model.GratitudeEntry{}
	}

	output(cmd.OutOrStdout(), notes, func(w io.Writer) { writeGratitude(w, notes) })
}

func runGratitudeRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Gratitude.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("gratitude rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

type streakResult struct {
	Today    int  `json:"today"`
	HasToday bool `json:"has_today"`
	Streak   int  `json:"streak"`
}

func runGratitudeStreak(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	today, err := s.Gratitude.CountToday(cmd.Context())
	if err != nil {
		exitErr("gratitude streak", err)
	}
	streak, err := s.Gratitude.Streak(cmd.Context())
	if err != nil {
		exitErr("gratitude streak", err)
	}

	res := streakResult{Today: today, HasToday: today > 0, Streak: streak}
	output(cmd.OutOrStdout(), res, func(w io.Writer) {
		fmt.Fprintf(w, "%d today, %s\n", res.Today, streakLabel(res.Streak))
	})
}
