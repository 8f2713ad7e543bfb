package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"lifeplanner/internal/issue"

	flag "github.com/spf13/pflag"
)

const issueHelp = `  issue ls                     List issues grouped by kanban column
  issue add <title> [options]  Capture an issue in the first column
  issue mv <id> <column>       Move an issue to another column
  issue rm <id>                Delete an issue`

func cmdIssue(o *IO, planner *app, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printIssueHelp(o)

		return nil
	}

	switch args[0] {
	case "ls":
		return issueLs(o, planner)
	case "add":
		return issueAdd(o, planner, args[1:])
	case "mv":
		return issueMv(o, planner, args[1:])
	case "rm":
		return issueRm(o, planner, args[1:])
	default:
		return fmt.Errorf("unknown issue subcommand: %s", args[0])
	}
}

func issueLs(o *IO, planner *app) error {
	issues, err := planner.issues.List()
	if err != nil {
		return err
	}

	columns := slices.Clone(planner.cfg.KanbanColumns)

	// Columns that exist in the document but not in the configuration
	// still need to be shown.
	for _, is := range issues {
		if !slices.Contains(columns, is.Status) {
			columns = append(columns, is.Status)
			o.Warn(
				"column \""+is.Status+"\" is not in kanban_columns",
				"add it to the config or move its issues to a configured column",
			)
		}
	}

	for _, column := range columns {
		o.Println("## " + column)

		for _, is := range issues {
			if is.Status != column {
				continue
			}

			line := fmt.Sprintf("  %s %s", is.ID, is.Title)
			if is.DueDate != "" {
				line += " due:" + is.DueDate
			}

			if is.Priority != "" {
				line += " prio:" + string(is.Priority)
			}

			o.Println(line)
		}
	}

	return nil
}

func issueAdd(o *IO, planner *app, args []string) error {
	flagSet := flag.NewFlagSet("issue add", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	goalID := flagSet.String("goal", "", "Linked goal ID")
	dueDate := flagSet.String("due", "", "Due date")
	priority := flagSet.String("priority", "", "Priority (Low|Medium|High)")
	tags := flagSet.StringSlice("tags", nil, "Comma-separated tags")
	body := flagSet.String("body", "", "Issue body")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(flagSet.Args(), " "))
	if title == "" {
		return fmt.Errorf("%w: issue title", errMissingArgument)
	}

	if *priority != "" && !isValidPriority(*priority) {
		return fmt.Errorf("invalid priority: %s", *priority)
	}

	added, err := planner.issues.Add(issue.Issue{
		Title:        title,
		Body:         *body,
		LinkedGoalID: *goalID,
		Tags:         *tags,
		DueDate:      *dueDate,
		Priority:     issue.Priority(*priority),
	})
	if err != nil {
		return err
	}

	o.Println("created", added.ID)

	return nil
}

func issueMv(o *IO, planner *app, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: issue mv <id> <column>", errMissingArgument)
	}

	err := planner.issues.Move(args[0], args[1])
	if err != nil {
		return err
	}

	o.Println("moved", args[0], "to", args[1])

	return nil
}

func issueRm(o *IO, planner *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: issue ID", errMissingArgument)
	}

	err := planner.issues.Delete(args[0])
	if err != nil {
		return err
	}

	o.Println("deleted", args[0])

	return nil
}

func isValidPriority(raw string) bool {
	priority := issue.Priority(raw)

	return priority == issue.PriorityLow || priority == issue.PriorityMedium || priority == issue.PriorityHigh
}

func printIssueHelp(o *IO) {
	o.Println("Usage: lp issue <subcommand> [args]")
	o.Println("")
	o.Println(issueHelp)
	o.Println("")
	o.Println("Options for issue add:")
	o.Println("  --goal=<id>          Linked goal ID")
	o.Println("  --due=<date>         Due date")
	o.Println("  --priority=<p>       Priority (Low|Medium|High)")
	o.Println("  --tags=<a,b>         Comma-separated tags")
	o.Println("  --body=<text>        Issue body")
}
