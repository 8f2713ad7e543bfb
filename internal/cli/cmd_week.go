package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"lifeplanner/internal/goal"
	"lifeplanner/internal/task"
	"lifeplanner/internal/weekly"

	flag "github.com/spf13/pflag"
)

const weekHelp = `  week show [--date=<day>]     Show the plan for the week of <day>
  week tasks                   List action plan candidate tasks
  week action <text>           Append an entry to this week's action plan`

const dateLayout = "2006-01-02"

func cmdWeek(o *IO, planner *app, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printWeekHelp(o)

		return nil
	}

	switch args[0] {
	case "show":
		return weekShow(o, planner, args[1:])
	case "tasks":
		if len(args) > 1 {
			return fmt.Errorf("unexpected argument: %s", args[1])
		}

		return weekTasks(o, planner)
	case "action":
		return weekAction(o, planner, args[1:])
	default:
		return fmt.Errorf("unknown week subcommand: %s", args[0])
	}
}

func weekShow(o *IO, planner *app, args []string) error {
	day, rest, err := parseDateFlag(args)
	if err != nil {
		return err
	}

	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	plan, err := planner.weekly.PlanForWeek(day)
	if err != nil {
		return err
	}

	printPlan(o, plan)

	return nil
}

// weekTasks lists the tasks eligible for the weekly action plan: those
// whose goal sits at action_plan_min_level or narrower. Tasks whose goal
// title no longer resolves stay listed so a renamed goal cannot hide them.
func weekTasks(o *IO, planner *app) error {
	tasks, err := planner.tasks.List()
	if err != nil {
		return err
	}

	goals, err := planner.goals.List()
	if err != nil {
		return err
	}

	levelByTitle := make(map[string]goal.Level, len(goals))
	for _, g := range goals {
		levelByTitle[g.Title] = g.Level
	}

	minRank := goal.Rank(goal.Level(planner.cfg.ActionPlanMinLevel))

	var shown int

	for _, item := range tasks {
		level, linked := levelByTitle[item.GoalTitle]
		if linked && goal.Rank(level) < minRank {
			continue
		}

		check := " "
		if item.Status == task.StatusDone {
			check = "x"
		}

		o.Printf("%s [%s] [%s] %s\n", item.ID, check, item.GoalTitle, item.Title)
		shown++
	}

	if shown == 0 {
		o.Println("no candidate tasks")
	}

	return nil
}

func weekAction(o *IO, planner *app, args []string) error {
	day, rest, err := parseDateFlag(args)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		return fmt.Errorf("%w: action text", errMissingArgument)
	}

	appendErr := planner.weekly.AppendAction(day, title)
	if appendErr != nil {
		return appendErr
	}

	o.Println("added to", planner.weekly.WeekLabel(day))

	return nil
}

func parseDateFlag(args []string) (time.Time, []string, error) {
	flagSet := flag.NewFlagSet("week", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	date := flagSet.String("date", "", "Any day of the target week (YYYY-MM-DD)")

	err := flagSet.Parse(args)
	if err != nil {
		return time.Time{}, nil, err
	}

	if *date == "" {
		return time.Now(), flagSet.Args(), nil
	}

	day, parseErr := time.ParseInLocation(dateLayout, *date, time.Local)
	if parseErr != nil {
		return time.Time{}, nil, fmt.Errorf("invalid --date: %s", *date)
	}

	return day, flagSet.Args(), nil
}

func printPlan(o *IO, plan weekly.Plan) {
	o.Println(plan.WeekLabel)

	if plan.MonthTheme != "" {
		o.Println("theme:", plan.MonthTheme)
	}

	if len(plan.Routines) > 0 {
		o.Println("")
		o.Println("routines:")

		for _, routine := range plan.Routines {
			var marks []string

			for _, day := range weekly.RoutineDays {
				if routine.Checks[day] {
					marks = append(marks, day)
				}
			}

			o.Printf("  %s [%s]\n", routine.Title, strings.Join(marks, " "))
		}
	}

	if len(plan.Roles) > 0 {
		o.Println("")
		o.Println("roles:")

		for _, role := range plan.Roles {
			o.Println("  " + role.Role)

			for _, entry := range role.Goals {
				o.Println("    - " + entry)
			}
		}
	}

	if len(plan.ActionPlans) > 0 {
		o.Println("")
		o.Println("action plan:")

		for _, action := range plan.ActionPlans {
			check := " "
			if action.Done {
				check = "x"
			}

			o.Printf("  [%s] %s\n", check, action.Title)
		}
	}
}

func printWeekHelp(o *IO) {
	o.Println("Usage: lp week <subcommand> [args]")
	o.Println("")
	o.Println(weekHelp)
	o.Println("")
	o.Println("Options:")
	o.Println("  --date=<day>         Any day of the target week [default: today]")
}
