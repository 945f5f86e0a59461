package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcliao/meletao/internal/model"
	"github.com/rcliao/meletao/internal/store"
)

func init() {
	goalCmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"g", "goals"},
		Short:   "Set goals and track their progress",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Long: "Create a yearly or dated goal. Passing --target, --total or --measure-type " +
			"turns on progress measurement.",
		Args: cobra.MinimumNArgs(1),
		Run:  runGoalAdd,
	}
	goalFlags(addCmd.Flags())
	addCmd.Flags().Bool("pin", false, "Pin the new goal")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List goals, newest first",
		Run:   runGoalList,
	}
	listCmd.Flags().Bool("measured", false, "Only goals with measurement on")
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a goal",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalGet,
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a goal",
		Long: "Change a goal. Turning measurement off clears its progress; switching " +
			"between numeric and checkbox clears the fields of the old type.",
		Args: cobra.ExactArgs(1),
		Run:  runGoalEdit,
	}
	editCmd.Flags().String("title", "", "New title")
	goalFlags(editCmd.Flags())

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalRm,
	}

	pinCmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin a goal as today's focus, unpinning any other",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalPin,
	}

	unpinCmd := &cobra.Command{
		Use:   "unpin [id]",
		Short: "Unpin a goal",
		Args:  cobra.MaximumNArgs(1),
		Run:   runGoalUnpin,
	}
	unpinCmd.Flags().Bool("all", false, "Unpin every goal")

	incCmd := &cobra.Command{
		Use:   "inc <id>",
		Short: "Increase a goal's progress",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runGoalStep(cmd, args[0], 1) },
	}
	incCmd.Flags().Float64("by", 1, "Step size")

	decCmd := &cobra.Command{
		Use:   "dec <id>",
		Short: "Decrease a goal's progress",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runGoalStep(cmd, args[0], -1) },
	}
	decCmd.Flags().Float64("by", 1, "Step size")

	progressCmd := &cobra.Command{
		Use:   "progress <id>",
		Short: "Set a goal's progress values",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalProgress,
	}
	progressFlags(progressCmd.Flags())

	goalCmd.AddCommand(addCmd, listCmd, getCmd, editCmd, rmCmd, pinCmd, unpinCmd, incCmd, decCmd, progressCmd)
	RootCmd.AddCommand(goalCmd)
}

func goalFlags(fs *pflag.FlagSet) {
	fs.String("description", "", "Description")
	fs.String("type", "yearly", "Goal type: yearly or dated")
	fs.Int("year", 0, "Year for a yearly goal (default: this year)")
	fs.String("start", "", "Start date for a dated goal (YYYY-MM-DD)")
	fs.String("end", "", "End date for a dated goal (YYYY-MM-DD)")
	fs.Bool("measure", false, "Track progress")
	fs.String("measure-type", "numeric", "Measurement: numeric or checkbox")
	fs.String("metric", "", "Metric name for a numeric goal")
	progressFlags(fs)
}

func progressFlags(fs *pflag.FlagSet) {
	fs.Float64("current", 0, "Current value of a numeric goal")
	fs.Float64("target", 0, "Target of a numeric goal")
	fs.Int("done", 0, "Completed steps of a checkbox goal")
	fs.Int("total", 0, "Total steps of a checkbox goal")
}

// goalPatch builds a patch from the flags the user set.
func goalPatch(fs *pflag.FlagSet) (store.GoalPatch, error) {
	var p store.GoalPatch
	if fs.Changed("title") {
		v, _ := fs.GetString("title")
		p.Title = &v
	}
	if fs.Changed("description") {
		v, _ := fs.GetString("description")
		p.Description = &v
	}
	if fs.Changed("type") {
		v, _ := fs.GetString("type")
		t, err := parseGoalType(v)
		if err != nil {
			return p, err
		}
		p.Type = &t
	}
	if fs.Changed("year") {
		v, _ := fs.GetInt("year")
		p.Year = &v
	}
	if fs.Changed("start") {
		v, _ := fs.GetString("start")
		p.StartDate = &v
	}
	if fs.Changed("end") {
		v, _ := fs.GetString("end")
		p.EndDate = &v
	}
	if fs.Changed("measure-type") {
		v, _ := fs.GetString("measure-type")
		m, err := parseMeasurementType(v)
		if err != nil {
			return p, err
		}
		p.MeasurementType = &m
	}
	if fs.Changed("metric") {
		v, _ := fs.GetString("metric")
		p.MetricName = &v
	}
	if fs.Changed("current") {
		v, _ := fs.GetFloat64("current")
		p.Current = &v
	}
	if fs.Changed("target") {
		v, _ := fs.GetFloat64("target")
		p.Target = &v
	}
	if fs.Changed("done") {
		v, _ := fs.GetInt("done")
		p.ChecklistDone = &v
	}
	if fs.Changed("total") {
		v, _ := fs.GetInt("total")
		p.ChecklistTotal = &v
	}

	switch {
	case fs.Changed("measure"):
		v, _ := fs.GetBool("measure")
		p.MeasurementEnabled = &v
	case p.MeasurementType != nil || p.Target != nil || p.ChecklistTotal != nil:
		on := true
		p.MeasurementEnabled = &on
	}
	return p, nil
}

func parseGoalType(s string) (model.GoalType, error) {
	switch t := model.GoalType(strings.ToLower(strings.TrimSpace(s))); t {
	case model.GoalYearly, model.GoalDated:
		return t, nil
	}
	return "", fmt.Errorf("unknown goal type %q: want yearly or dated", s)
}

func parseMeasurementType(s string) (model.MeasurementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "checkbox", "checklist":
		return model.ParseMeasurementType(s), nil
	}
	return "", fmt.Errorf("unknown measurement type %q: want numeric or checkbox", s)
}

// newGoalDraft is the starting point for a goal created from the CLI.
func newGoalDraft(now time.Time) model.Goal {
	year := now.Year()
	return model.Goal{
		Type:            model.GoalYearly,
		Year:            &year,
		MeasurementType: model.MeasurementNumeric,
	}
}

func createParams(g model.Goal) store.CreateGoalParams {
	p := store.CreateGoalParams{
		Title:              g.Title,
		Description:        g.Description,
		Type:               g.Type,
		StartDate:          g.StartDate,
		EndDate:            g.EndDate,
		MeasurementEnabled: g.MeasurementEnabled,
		MeasurementType:    g.MeasurementType,
		MetricName:         g.MetricName,
		Current:            g.Current,
		ChecklistDone:      g.ChecklistDone,
		Pinned:             g.Pinned,
	}
	if g.Year != nil {
		p.Year = *g.Year
	}
	if g.Target != nil {
		p.Target = *g.Target
	}
	if g.ChecklistTotal != nil {
		p.ChecklistTotal = *g.ChecklistTotal
	}
	return p
}

func runGoalAdd(cmd *cobra.Command, args []string) {
	patch, err := goalPatch(cmd.Flags())
	if err != nil {
		exitErr("goal add", err)
	}
	pin, _ := cmd.Flags().GetBool("pin")

	draft := newGoalDraft(time.Now().In(zone()))
	patch.Apply(&draft)
	draft.Title = strings.Join(args, " ")
	draft.Pinned = pin
	if err := validateGoal(draft); err != nil {
		exitErr("goal add", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := s.Goals.Create(cmd.Context(), createParams(draft))
	if err != nil {
		exitErr("goal add", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoal(w, g) })
}

func runGoalList(cmd *cobra.Command, args []string) {
	measured, _ := cmd.Flags().GetBool("measured")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goals, err := s.Goals.List(cmd.Context())
	if err != nil {
		exitErr("goal list", err)
	}

	if measured {
		kept := goals[:0]
		for _, g := range goals {
			if g.MeasurementEnabled {
				kept = append(kept, g)
			}
		}
		goals = kept
	}
	if limit > 0 && len(goals) > limit {
		goals = goals[:limit]
	}
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = viewGoal(g)
	}

	output(cmd.OutOrStdout(), views, func(w io.Writer) { writeGoals(w, goals) })
}

func runGoalGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := s.Goals.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("goal get", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoal(w, g) })
}

func runGoalEdit(cmd *cobra.Command, args []string) {
	patch, err := goalPatch(cmd.Flags())
	if err != nil {
		exitErr("goal edit", err)
	}
	if patch == (store.GoalPatch{}) {
		exitErr("goal edit", fmt.Errorf("nothing to change"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	current, err := s.Goals.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("goal edit", err)
	}
	draft := current
	patch.Apply(&draft)
	if err := validateGoal(draft); err != nil {
		exitErr("goal edit", err)
	}

	g, err := s.Goals.Update(cmd.Context(), args[0], patch)
	if err != nil {
		exitErr("goal edit", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoal(w, g) })
}

func runGoalRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Goals.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("goal rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runGoalPin(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := s.Goals.Pin(cmd.Context(), args[0])
	if err != nil {
		exitErr("goal pin", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoalLine(w, g) })
}

func runGoalUnpin(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		exitErr("goal unpin", fmt.Errorf("pass either a goal id or --all"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if all {
		if err := s.Goals.UnpinAll(cmd.Context()); err != nil {
			exitErr("goal unpin", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
		return
	}

	g, err := s.Goals.Unpin(cmd.Context(), args[0])
	if err != nil {
		exitErr("goal unpin", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoalLine(w, g) })
}

// runGoalStep moves a measured goal's progress by sign times --by.
func runGoalStep(cmd *cobra.Command, id string, sign float64) {
	by, _ := cmd.Flags().GetFloat64("by")
	delta := sign * by

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := s.Goals.Get(cmd.Context(), id)
	if err != nil {
		exitErr("goal "+cmd.Name(), err)
	}

	switch {
	case g.Numeric():
		g, err = s.Goals.IncrementNumeric(cmd.Context(), id, delta)
	case g.Checklist():
		if delta != math.Trunc(delta) {
			exitErr("goal "+cmd.Name(), fmt.Errorf("checkbox goals move in whole steps, got %v", by))
		}
		g, err = s.Goals.IncrementChecklist(cmd.Context(), id, int(delta))
	default:
		err = fmt.Errorf("goal %s has no measurement", id)
	}
	if err != nil {
		exitErr("goal "+cmd.Name(), err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoalLine(w, g) })
}

func runGoalProgress(cmd *cobra.Command, args []string) {
	patch, err := goalPatch(cmd.Flags())
	if err != nil {
		exitErr("goal progress", err)
	}
	p := store.ProgressPatch{
		Current:        patch.Current,
		Target:         patch.Target,
		ChecklistDone:  patch.ChecklistDone,
		ChecklistTotal: patch.ChecklistTotal,
	}
	if p == (store.ProgressPatch{}) {
		exitErr("goal progress", fmt.Errorf("pass --current, --target, --done or --total"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	current, err := s.Goals.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("goal progress", err)
	}
	if !current.MeasurementEnabled {
		exitErr("goal progress", fmt.Errorf("goal %s has no measurement", args[0]))
	}
	draft := current
	store.GoalPatch{
		Current:        p.Current,
		Target:         p.Target,
		ChecklistDone:  p.ChecklistDone,
		ChecklistTotal: p.ChecklistTotal,
	}.Apply(&draft)
	if err := validateGoal(draft); err != nil {
		exitErr("goal progress", err)
	}

	g, err := s.Goals.SetProgress(cmd.Context(), args[0], p)
	if err != nil {
		exitErr("goal progress", err)
	}

	output(cmd.OutOrStdout(), viewGoal(g), func(w io.Writer) { writeGoalLine(w, g) })
}
