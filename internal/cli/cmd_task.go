package cli

import (
	"fmt"
	"io"
	"strings"

	"lifeplanner/internal/task"

	flag "github.com/spf13/pflag"
)

const taskHelp = `  task ls                      List tasks cut out of goals
  task add --goal=<T> <title>  Create a task linked to a goal title
  task done <id>               Toggle a task's checkbox`

func cmdTask(o *IO, planner *app, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printTaskHelp(o)

		return nil
	}

	switch args[0] {
	case "ls":
		return taskLs(o, planner)
	case "add":
		return taskAdd(o, planner, args[1:])
	case "done":
		return taskDone(o, planner, args[1:])
	default:
		return fmt.Errorf("unknown task subcommand: %s", args[0])
	}
}

func taskLs(o *IO, planner *app) error {
	tasks, err := planner.tasks.List()
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		o.Println("no tasks")

		return nil
	}

	for _, item := range tasks {
		check := " "
		if item.Status == task.StatusDone {
			check = "x"
		}

		o.Printf("%s [%s] [%s] %s\n", item.ID, check, item.GoalTitle, item.Title)
	}

	return nil
}

func taskAdd(o *IO, planner *app, args []string) error {
	flagSet := flag.NewFlagSet("task add", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	goalTitle := flagSet.StringP("goal", "g", "", "Goal title the task belongs to")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *goalTitle == "" {
		return fmt.Errorf("%w: --goal", errMissingArgument)
	}

	title := strings.TrimSpace(strings.Join(flagSet.Args(), " "))
	if title == "" {
		return fmt.Errorf("%w: task title", errMissingArgument)
	}

	added, err := planner.tasks.Add(*goalTitle, title)
	if err != nil {
		return err
	}

	o.Println("created", added.ID)

	return nil
}

func taskDone(o *IO, planner *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: task ID", errMissingArgument)
	}

	err := planner.tasks.Toggle(args[0])
	if err != nil {
		return err
	}

	o.Println("toggled", args[0])

	return nil
}

func printTaskHelp(o *IO) {
	o.Println("Usage: lp task <subcommand> [args]")
	o.Println("")
	o.Println(taskHelp)
}
