package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/meletao/internal/model"
	"github.com/rcliao/meletao/internal/store"
)

// resetFlags restores every flag to its default so one Execute does not
// leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command against db and returns stdout.
func runCLI(t *testing.T, db string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{
		"--db", db,
		"--config", filepath.Join(filepath.Dir(db), "missing.yaml"),
		"--format", "json",
	}, args...))
	err := RootCmd.Execute()
	resetFlags(RootCmd)
	require.NoError(t, err, out.String())
	return out.String()
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestCommandPresence(t *testing.T) {
	paths := [][]string{
		{"journal", "add"}, {"journal", "list"}, {"journal", "get"}, {"journal", "edit"}, {"journal", "rm"},
		{"goal", "add"}, {"goal", "list"}, {"goal", "get"}, {"goal", "edit"}, {"goal", "rm"},
		{"goal", "pin"}, {"goal", "unpin"}, {"goal", "inc"}, {"goal", "dec"}, {"goal", "progress"},
		{"gratitude", "add"}, {"gratitude", "list"}, {"gratitude", "rm"}, {"gratitude", "streak"},
		{"today"}, {"export"}, {"import"}, {"stats"}, {"search"}, {"whoami"},
	}
	for _, path := range paths {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := RootCmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	db := RootCmd.PersistentFlags().Lookup("db")
	require.NotNil(t, db)
	assert.Equal(t, "d", db.Shorthand)

	format := RootCmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "f", format.Shorthand)

	require.NotNil(t, RootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, RootCmd.PersistentFlags().Lookup("verbose"))
}

func TestValidateGoal(t *testing.T) {
	year := func(y int) *int { return &y }
	num := func(f float64) *float64 { return &f }
	total := func(n int) *int { return &n }

	tests := []struct {
		name    string
		goal    model.Goal
		wantErr string
	}{
		{"ok yearly", model.Goal{Title: "Read", Type: model.GoalYearly, Year: year(2026)}, ""},
		{"missing title", model.Goal{Title: "  ", Type: model.GoalYearly, Year: year(2026)}, "title is required"},
		{"year too early", model.Goal{Title: "x", Type: model.GoalYearly, Year: year(1999)}, "valid year"},
		{"year too late", model.Goal{Title: "x", Type: model.GoalYearly, Year: year(2101)}, "valid year"},
		{"no year", model.Goal{Title: "x", Type: model.GoalYearly}, "valid year"},
		{"dated open", model.Goal{Title: "x", Type: model.GoalDated}, ""},
		{"dated ordered", model.Goal{Title: "x", Type: model.GoalDated, StartDate: "2026-01-01", EndDate: "2026-01-01"}, ""},
		{"dated reversed", model.Goal{Title: "x", Type: model.GoalDated, StartDate: "2026-02-01", EndDate: "2026-01-01"}, "start date"},
		{"dated malformed", model.Goal{Title: "x", Type: model.GoalDated, StartDate: "01/02/2026"}, "YYYY-MM-DD"},
		{"numeric ok", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementNumeric, Target: num(5), Current: 2}, ""},
		{"numeric no target", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementNumeric}, "target > 0"},
		{"numeric negative current", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementNumeric, Target: num(5), Current: -1}, "negative"},
		{"checklist ok", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementCheckbox, ChecklistTotal: total(3), ChecklistDone: 3}, ""},
		{"checklist no total", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementCheckbox}, "total > 0"},
		{"checklist over", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementCheckbox, ChecklistTotal: total(3), ChecklistDone: 4}, "exceed"},
		{"checklist negative", model.Goal{Title: "x", Type: model.GoalDated, MeasurementEnabled: true,
			MeasurementType: model.MeasurementCheckbox, ChecklistTotal: total(3), ChecklistDone: -1}, "negative"},
		{"unmeasured ignores progress", model.Goal{Title: "x", Type: model.GoalDated, Current: -5}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGoal(tt.goal)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParsers(t *testing.T) {
	gt, err := parseGoalType(" Dated ")
	require.NoError(t, err)
	assert.Equal(t, model.GoalDated, gt)
	_, err = parseGoalType("monthly")
	assert.Error(t, err)

	mt, err := parseMeasurementType("checklist")
	require.NoError(t, err)
	assert.Equal(t, model.MeasurementCheckbox, mt)
	_, err = parseMeasurementType("percent")
	assert.Error(t, err)

	mood, err := parseMood("grateful")
	require.NoError(t, err)
	assert.Equal(t, model.MoodGrateful, mood)
	mood, err = parseMood("")
	require.NoError(t, err)
	assert.Empty(t, mood)
	_, err = parseMood("ecstatic")
	assert.Error(t, err)
}

func TestGoalPatchFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	goalFlags(fs)
	require.NoError(t, fs.Parse([]string{"--target", "12", "--metric", "Books"}))

	p, err := goalPatch(fs)
	require.NoError(t, err)
	require.NotNil(t, p.Target)
	assert.Equal(t, 12.0, *p.Target)
	assert.Equal(t, "Books", *p.MetricName)
	require.NotNil(t, p.MeasurementEnabled)
	assert.True(t, *p.MeasurementEnabled)
	assert.Nil(t, p.Type)
	assert.Nil(t, p.Year)

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	goalFlags(fs)
	require.NoError(t, fs.Parse([]string{"--target", "12", "--measure=false"}))
	p, err = goalPatch(fs)
	require.NoError(t, err)
	assert.False(t, *p.MeasurementEnabled)

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	goalFlags(fs)
	require.NoError(t, fs.Parse([]string{"--type", "weekly"}))
	_, err = goalPatch(fs)
	assert.Error(t, err)
}

func TestEndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "meletao.db")

	entry := decode[model.JournalEntry](t, runCLI(t, db, "journal", "add", "--mood", "calm", "--title", "Morning", "Quiet", "start"))
	assert.Equal(t, "Quiet start", entry.Content)
	assert.Equal(t, model.MoodCalm, entry.Mood)

	type goalOut struct {
		ID      string  `json:"id"`
		Current float64 `json:"current"`
		Pinned  bool    `json:"pinned"`
		Percent int     `json:"percent"`
	}
	g := decode[goalOut](t, runCLI(t, db, "goal", "add", "--target", "10", "--metric", "Runs", "--pin", "Run", "more"))
	assert.True(t, g.Pinned)

	for i := 0; i < 11; i++ {
		g = decode[goalOut](t, runCLI(t, db, "goal", "inc", g.ID))
	}
	assert.Equal(t, 10.0, g.Current)
	assert.Equal(t, 100, g.Percent)

	g = decode[goalOut](t, runCLI(t, db, "goal", "dec", g.ID, "--by", "2.5"))
	assert.Equal(t, 7.5, g.Current)

	runCLI(t, db, "gratitude", "add", "--public", "Good", "friends")

	sum := decode[store.TodaySummary](t, runCLI(t, db, "today"))
	require.NotNil(t, sum.LatestEntry)
	assert.Equal(t, entry.ID, sum.LatestEntry.ID)
	assert.Equal(t, "Runs: 7.5/10", sum.FocusLine)
	assert.Equal(t, 75, sum.PinnedPercent)
	assert.Equal(t, 1, sum.GratitudeToday)
	assert.Equal(t, 1, sum.GratitudeStreak)

	results := decode[[]store.SearchResult](t, runCLI(t, db, "search", "friends"))
	require.Len(t, results, 1)
	assert.Equal(t, store.KindGratitude, results[0].Kind)

	snap := decode[store.Snapshot](t, runCLI(t, db, "export"))
	assert.Len(t, snap.Journal, 1)
	assert.Len(t, snap.Goals, 1)
	assert.Len(t, snap.Gratitude, 1)

	runCLI(t, db, "goal", "unpin", "--all")
	sum = decode[store.TodaySummary](t, runCLI(t, db, "today"))
	assert.Nil(t, sum.PinnedGoal)
	assert.Equal(t, "No goal pinned", sum.FocusLine)

	runCLI(t, db, "journal", "rm", entry.ID)
	entries := decode[[]model.JournalEntry](t, runCLI(t, db, "journal", "list"))
	assert.Empty(t, entries)
}

func TestGoalEditSwitchesMeasurement(t *testing.T) {
	db := filepath.Join(t.TempDir(), "meletao.db")

	g := decode[model.Goal](t, runCLI(t, db, "goal", "add", "--measure-type", "checkbox", "--total", "4", "--done", "2", "Chapters"))
	assert.Equal(t, 2, g.ChecklistDone)

	g = decode[model.Goal](t, runCLI(t, db, "goal", "edit", g.ID, "--measure-type", "numeric", "--target", "300"))
	assert.Equal(t, model.MeasurementNumeric, g.MeasurementType)
	assert.Zero(t, g.ChecklistDone)
	assert.Nil(t, g.ChecklistTotal)
	require.NotNil(t, g.Target)
	assert.Equal(t, 300.0, *g.Target)
}

func TestTextOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "meletao.db")
	runCLI(t, db, "gratitude", "add", "Tea")

	out := runCLI(t, db, "--format", "text", "today")
	assert.Contains(t, out, "No goal pinned")
	assert.Contains(t, out, "Nothing written yet.")
	assert.Contains(t, out, "1 today, 1 day streak")

	out = runCLI(t, db, "--format", "text", "gratitude", "list")
	assert.Contains(t, out, "private")
	assert.Contains(t, out, "Tea")
}

func TestGoalWindow(t *testing.T) {
	y := 2026
	assert.Equal(t, "Year 2026", goalWindow(model.Goal{Type: model.GoalYearly, Year: &y}))
	assert.Equal(t, "2026-01-01..2026-03-01", goalWindow(model.Goal{Type: model.GoalDated, StartDate: "2026-01-01", EndDate: "2026-03-01"}))
	assert.Equal(t, "until 2026-03-01", goalWindow(model.Goal{Type: model.GoalDated, EndDate: "2026-03-01"}))
	assert.Equal(t, "Dated", goalWindow(model.Goal{Type: model.GoalDated}))
}
