package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"lifeplanner/internal/goal"

	flag "github.com/spf13/pflag"
)

const goalHelp = `  goal ls                      Print the goal tree
  goal add --level=<L> <title> Create a goal (人生|長期|中期|年間|四半期|月間|週間)
  goal set <id> [options]      Edit a goal's fields
  goal mv <id> <target>        Move a goal relative to a target
  goal root <id>               Detach a goal from its parent
  goal rm <id>                 Delete a goal`

var errMissingArgument = errors.New("missing argument")

func cmdGoal(o *IO, planner *app, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printGoalHelp(o)

		return nil
	}

	switch args[0] {
	case "ls":
		return goalLs(o, planner)
	case "add":
		return goalAdd(o, planner, args[1:])
	case "set":
		return goalSet(o, planner, args[1:])
	case "mv":
		return goalMv(o, planner, args[1:])
	case "root":
		return goalRoot(o, planner, args[1:])
	case "rm":
		return goalRm(o, planner, args[1:])
	default:
		return fmt.Errorf("unknown goal subcommand: %s", args[0])
	}
}

func goalLs(o *IO, planner *app) error {
	nodes, err := planner.goals.Tree()
	if err != nil {
		return err
	}

	if len(nodes) == 0 {
		o.Println("no goals")

		return nil
	}

	printGoalNodes(o, nodes, 0)

	return nil
}

func printGoalNodes(o *IO, nodes []*goal.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, node := range nodes {
		line := fmt.Sprintf("%s- [%s] %s (%s)", indent, node.Goal.Level, node.Goal.Title, node.Goal.ID)
		if node.Goal.DueDate != "" {
			line += " due:" + node.Goal.DueDate
		}

		o.Println(line)
		printGoalNodes(o, node.Children, depth+1)
	}
}

func goalAdd(o *IO, planner *app, args []string) error {
	flagSet := flag.NewFlagSet("goal add", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	level := flagSet.StringP("level", "l", string(goal.LevelWeekly), "Goal level")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(flagSet.Args(), " "))
	if title == "" {
		return fmt.Errorf("%w: goal title", errMissingArgument)
	}

	added, err := planner.goals.Add(goal.Level(*level), title)
	if err != nil {
		return err
	}

	o.Println("created", added.ID)

	return nil
}

func goalSet(o *IO, planner *app, args []string) error {
	flagSet := flag.NewFlagSet("goal set", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	title := flagSet.String("title", "", "New title")
	description := flagSet.String("desc", "", "New description")
	dueDate := flagSet.String("due", "", "Due date (free-form, YYYY-MM-DD by convention)")
	parent := flagSet.String("parent", "", "Parent goal ID (empty string detaches)")
	expand := flagSet.Bool("expand", false, "Mark the goal expanded in tree views")
	collapse := flagSet.Bool("collapse", false, "Mark the goal collapsed in tree views")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return fmt.Errorf("%w: goal ID", errMissingArgument)
	}

	if *expand && *collapse {
		return errors.New("--expand and --collapse are mutually exclusive")
	}

	var update goal.Update

	if flagSet.Changed("title") {
		update.Title = title
	}

	if flagSet.Changed("desc") {
		update.Description = description
	}

	if flagSet.Changed("due") {
		update.DueDate = dueDate
	}

	if flagSet.Changed("parent") {
		update.ParentGoalID = parent
	}

	if *expand || *collapse {
		expanded := *expand
		update.Expanded = &expanded
	}

	updated, err := planner.goals.Update(flagSet.Arg(0), update)
	if err != nil {
		return err
	}

	o.Println("updated", updated.ID)

	return nil
}

func goalMv(o *IO, planner *app, args []string) error {
	flagSet := flag.NewFlagSet("goal mv", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	before := flagSet.Bool("before", false, "Place the goal before the target instead of after")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 2 {
		return fmt.Errorf("%w: goal mv <id> <target-id>", errMissingArgument)
	}

	position := goal.PositionAfter
	if *before {
		position = goal.PositionBefore
	}

	moveErr := planner.goals.Move(flagSet.Arg(0), flagSet.Arg(1), position)
	if moveErr != nil {
		return moveErr
	}

	o.Println("moved", flagSet.Arg(0))

	return nil
}

func goalRoot(o *IO, planner *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: goal ID", errMissingArgument)
	}

	err := planner.goals.MoveToRoot(args[0])
	if err != nil {
		return err
	}

	o.Println("moved", args[0], "to root")

	return nil
}

func goalRm(o *IO, planner *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: goal ID", errMissingArgument)
	}

	err := planner.goals.Delete(args[0])
	if err != nil {
		return err
	}

	o.Println("deleted", args[0])

	return nil
}

func printGoalHelp(o *IO) {
	o.Println("Usage: lp goal <subcommand> [args]")
	o.Println("")
	o.Println(goalHelp)
	o.Println("")
	o.Println("Options for goal add:")
	o.Println("  -l, --level=<L>      Goal level [default: 週間]")
	o.Println("")
	o.Println("Options for goal set:")
	o.Println("  --title=<text>       New title")
	o.Println("  --desc=<text>        New description")
	o.Println("  --due=<date>         Due date")
	o.Println("  --parent=<id>        Parent goal ID (empty detaches)")
	o.Println("  --expand/--collapse  Toggle tree expansion state")
	o.Println("")
	o.Println("Options for goal mv:")
	o.Println("  --before             Place before the target [default: after]")
}
