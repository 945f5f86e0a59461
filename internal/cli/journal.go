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
	journalCmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "Write and read journal entries",
	}

	addCmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Write a journal entry",
		Long:  "Write a journal entry. Content can be a positional arg or piped via stdin.",
		Run:   runJournalAdd,
	}
	addCmd.Flags().StringP("title", "t", "", "Optional title")
	addCmd.Flags().StringP("mood", "m", "", "Mood: "+moodNames())

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Run:   runJournalList,
	}
	listCmd.Flags().StringP("mood", "m", "", "Filter by mood")
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a journal entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJournalGet,
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a journal entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJournalEdit,
	}
	editCmd.Flags().StringP("title", "t", "", "New title (empty clears it)")
	editCmd.Flags().StringP("content", "c", "", "New content")
	editCmd.Flags().StringP("mood", "m", "", "New mood (empty clears it)")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJournalRm,
	}

	journalCmd.AddCommand(addCmd, listCmd, getCmd, editCmd, rmCmd)
	RootCmd.AddCommand(journalCmd)
}

func moodNames() string {
	names := make([]string, len(model.Moods))
	for i, m := range model.Moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// parseMood accepts an empty mood or one of model.Moods.
func parseMood(s string) (model.Mood, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	m := model.ParseMood(s)
	if m == "" {
		return "", fmt.Errorf("unknown mood %q: want one of %s", s, moodNames())
	}
	return m, nil
}

func runJournalAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	moodStr, _ := cmd.Flags().GetString("mood")

	content, err := readContent(args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if strings.TrimSpace(content) == "" {
		exitErr("journal add", fmt.Errorf("content is required (positional arg or stdin)"))
	}
	mood, err := parseMood(moodStr)
	if err != nil {
		exitErr("journal add", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	e, err := s.Journal.Create(cmd.Context(), store.CreateJournalParams{
		Title:   title,
		Content: strings.TrimRight(content, "\n"),
		Mood:    mood,
	})
	if err != nil {
		exitErr("journal add", err)
	}

	output(cmd.OutOrStdout(), e, func(w io.Writer) { writeJournalLine(w, e) })
}

func runJournalList(cmd *cobra.Command, args []string) {
	moodStr, _ := cmd.Flags().GetString("mood")
	limit, _ := cmd.Flags().GetInt("limit")

	mood, err := parseMood(moodStr)
	if err != nil {
		exitErr("journal list", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Journal.List(cmd.Context())
	if err != nil {
		exitErr("journal list", err)
	}

	if mood != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.Mood == mood {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}

	output(cmd.OutOrStdout(), entries, func(w io.Writer) { writeJournalEntries(w, entries) })
}

func runJournalGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	e, err := s.Journal.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("journal get", err)
	}

	output(cmd.OutOrStdout(), e, func(w io.Writer) { writeJournalEntry(w, e) })
}

func runJournalEdit(cmd *cobra.Command, args []string) {
	var patch store.JournalPatch
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("content") {
		v, _ := cmd.Flags().GetString("content")
		if strings.TrimSpace(v) == "" {
			exitErr("journal edit", fmt.Errorf("content cannot be empty"))
		}
		patch.Content = &v
	}
	if cmd.Flags().Changed("mood") {
		v, _ := cmd.Flags().GetString("mood")
		mood, err := parseMood(v)
		if err != nil {
			exitErr("journal edit", err)
		}
		patch.Mood = &mood
	}
	if patch == (store.JournalPatch{}) {
		exitErr("journal edit", fmt.Errorf("nothing to change: pass --title, --content or --mood"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	e, err := s.Journal.Update(cmd.Context(), args[0], patch)
	if err != nil {
		exitErr("journal edit", err)
	}

	output(cmd.OutOrStdout(), e, func(w io.Writer) { writeJournalEntry(w, e) })
}

func runJournalRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Journal.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("journal rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}
