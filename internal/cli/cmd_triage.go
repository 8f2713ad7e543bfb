package cli

import (
	"errors"
	"fmt"
	"io"

	"lifeplanner/internal/goal"

	flag "github.com/spf13/pflag"
)

const triageHelp = `  triage <id> <destination>    File an item as --goal=<L>, --task=<goal>,
                               --weekly or --issue`

func cmdTriage(o *IO, planner *app, args []string) error {
	if hasHelpFlag(args) {
		printTriageHelp(o)

		return nil
	}

	flagSet := flag.NewFlagSet("triage", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	goalLevel := flagSet.String("goal", "", "File as a goal at the given level")
	taskGoal := flagSet.String("task", "", "File as a task under the given goal title")
	toWeekly := flagSet.Bool("weekly", false, "Append to this week's action plan")
	toIssue := flagSet.Bool("issue", false, "File as a kanban issue")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return fmt.Errorf("%w: item ID", errMissingArgument)
	}

	itemID := flagSet.Arg(0)

	destinations := 0
	for _, set := range []bool{*goalLevel != "", *taskGoal != "", *toWeekly, *toIssue} {
		if set {
			destinations++
		}
	}

	if destinations != 1 {
		return errors.New("exactly one of --goal, --task, --weekly or --issue is required")
	}

	switch {
	case *goalLevel != "":
		err = planner.triage.ToGoal(itemID, goal.Level(*goalLevel))
	case *taskGoal != "":
		err = planner.triage.ToTask(itemID, *taskGoal)
	case *toWeekly:
		err = planner.triage.ToWeekly(itemID)
	default:
		err = planner.triage.ToIssue(itemID)
	}

	if err != nil {
		return err
	}

	o.Println("triaged", itemID)

	return nil
}

func printTriageHelp(o *IO) {
	o.Println("Usage: lp triage <id> <destination>")
	o.Println("")
	o.Println("File one inbox item into another planner document. The item is")
	o.Println("marked as triaged and removed from the inbox on the next load.")
	o.Println("")
	o.Println("Destinations (exactly one):")
	o.Println("  --goal=<level>       Create a goal at the given level")
	o.Println("  --task=<goal-title>  Create a task linked to the given goal")
	o.Println("  --weekly             Append to this week's action plan")
	o.Println("  --issue              Create a kanban issue in the first column")
}
