package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rcliao/meletao/internal/insight"
	"github.com/rcliao/meletao/internal/model"
	"github.com/rcliao/meletao/internal/store"
)

// listPreview is the excerpt length in text listings.
const listPreview = 60

// output writes v as JSON, or through text when --format=text.
func output(w io.Writer, v any, text func(io.Writer)) {
	if outputFormat() == "text" && text != nil {
		text(w)
		return
	}
	printJSON(w, v)
}

func formatTime(ts model.Timestamp) string {
	return ts.Time().In(zone()).Format("2006-01-02 15:04")
}

func zone() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

func writeJournalEntries(w io.Writer, entries []model.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries.")
		return
	}
	for _, e := range entries {
		writeJournalLine(w, e)
	}
}

func writeJournalLine(w io.Writer, e model.JournalEntry) {
	head := e.Title
	if head == "" {
		head = insight.Preview(e.Content, listPreview)
	}
	mood := ""
	if e.Mood != "" {
		mood = " [" + string(e.Mood) + "]"
	}
	fmt.Fprintf(w, "%s  %s%s  %s\n", e.ID, formatTime(e.CreatedAt), mood, head)
}

func writeJournalEntry(w io.Writer, e model.JournalEntry) {
	writeJournalLine(w, e)
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Content)
}

// goalView is a goal with its computed progress.
type goalView struct {
	model.Goal
	Percent int `json:"percent"`
}

func viewGoal(g model.Goal) goalView {
	return goalView{Goal: g, Percent: insight.ProgressPercent(g)}
}

func writeGoals(w io.Writer, goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals.")
		return
	}
	for _, g := range goals {
		writeGoalLine(w, g)
	}
}

func writeGoalLine(w io.Writer, g model.Goal) {
	pin := " "
	if g.Pinned {
		pin = "*"
	}
	progress := ""
	if g.MeasurementEnabled {
		progress = fmt.Sprintf("  %3d%%  %s", insight.ProgressPercent(g), insight.FocusLine(&g))
	}
	fmt.Fprintf(w, "%s %s  %-12s  %s%s\n", pin, g.ID, goalWindow(g), g.Title, progress)
}

func writeGoal(w io.Writer, g model.Goal) {
	writeGoalLine(w, g)
	if g.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, g.Description)
	}
}

// goalWindow renders the goal's time window.
func goalWindow(g model.Goal) string {
	if g.Type == model.GoalYearly {
		if g.Year != nil {
			return fmt.Sprintf("Year %d", *g.Year)
		}
		return "Yearly"
	}
	switch {
	case g.StartDate != "" && g.EndDate != "":
		return g.StartDate + ".." + g.EndDate
	case g.StartDate != "":
		return "from " + g.StartDate
	case g.EndDate != "":
		return "until " + g.EndDate
	}
	return "Dated"
}

func writeGratitude(w io.Writer, notes []model.GratitudeEntry) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No gratitude notes.")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %-7s  %s\n", n.ID, formatTime(n.CreatedAt), n.Visibility, n.Text)
	}
}

func writeToday(w io.Writer, sum *store.TodaySummary) {
	fmt.Fprintf(w, "Today, %s\n\n", sum.Date)

	fmt.Fprintln(w, "Focus")
	if sum.PinnedGoal != nil {
		fmt.Fprintf(w, "  %s (%d%%)\n", sum.PinnedGoal.Title, sum.PinnedPercent)
	}
	fmt.Fprintf(w, "  %s\n\n", sum.FocusLine)

	fmt.Fprintln(w, "Latest entry")
	if sum.LatestEntry == nil {
		fmt.Fprintln(w, "  Nothing written yet.")
	} else {
		if sum.LatestEntry.Title != "" {
			fmt.Fprintf(w, "  %s\n", sum.LatestEntry.Title)
		}
		fmt.Fprintf(w, "  %s\n", sum.LatestPreview)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Gratitude")
	fmt.Fprintf(w, "  %d today, %s\n", sum.GratitudeToday, streakLabel(sum.GratitudeStreak))
}

func writeSearchResults(w io.Writer, results []store.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches.")
		return
	}
	for _, r := range results {
		text := r.Excerpt
		if r.Title != "" {
			text = strings.TrimSpace(r.Title + "  " + insight.Preview(r.Excerpt, listPreview))
		}
		fmt.Fprintf(w, "%-9s  %s  %s\n", r.Kind, r.ID, text)
	}
}

func streakLabel(n int) string {
	if n == 1 {
		return "1 day streak"
	}
	return fmt.Sprintf("%d days streak", n)
}
