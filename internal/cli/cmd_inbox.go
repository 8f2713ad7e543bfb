package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const inboxHelp = `  inbox ls                     List captured items
  inbox add [text]             Capture an item (prompts without text)
  inbox edit <id> <text>       Rewrite an item's content
  inbox rm <id>                Delete an item`

func cmdInbox(o *IO, planner *app, in io.Reader, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printInboxHelp(o)

		return nil
	}

	switch args[0] {
	case "ls":
		return inboxLs(o, planner)
	case "add":
		return inboxAdd(o, planner, in, args[1:])
	case "edit":
		return inboxEdit(o, planner, args[1:])
	case "rm":
		return inboxRm(o, planner, args[1:])
	default:
		return fmt.Errorf("unknown inbox subcommand: %s", args[0])
	}
}

func inboxLs(o *IO, planner *app) error {
	items, err := planner.inbox.LoadAndReconcile()
	if err != nil {
		return err
	}

	if len(items) == 0 {
		o.Println("inbox is empty")

		return nil
	}

	for _, item := range items {
		o.Printf("%s [%s] %s\n", item.ID, item.Status, item.Content)
	}

	return nil
}

func inboxAdd(o *IO, planner *app, in io.Reader, args []string) error {
	content := strings.TrimSpace(strings.Join(args, " "))

	if content == "" {
		captured, err := promptCapture(in)
		if err != nil {
			return err
		}

		content = strings.TrimSpace(captured)
	}

	if content == "" {
		return errors.New("nothing to capture")
	}

	item, err := planner.inbox.Add(content)
	if err != nil {
		return err
	}

	o.Println("captured", item.ID)

	return nil
}

func inboxEdit(o *IO, planner *app, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: inbox edit <id> <text>", errMissingArgument)
	}

	content := strings.TrimSpace(strings.Join(args[1:], " "))
	if content == "" {
		return errors.New("nothing to store")
	}

	err := planner.inbox.Update(args[0], content)
	if err != nil {
		return err
	}

	o.Println("updated", args[0])

	return nil
}

func inboxRm(o *IO, planner *app, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: item ID", errMissingArgument)
	}

	err := planner.inbox.Delete(args[0])
	if err != nil {
		return err
	}

	o.Println("deleted", args[0])

	return nil
}

// promptCapture reads one capture line interactively. A terminal gets a
// line editor with history; piped input falls back to a plain read.
func promptCapture(in io.Reader) (string, error) {
	if _, isFile := in.(*os.File); !isFile || !liner.TerminalSupported() {
		return readLine(in)
	}

	prompt := liner.NewLiner()
	defer prompt.Close()

	prompt.SetCtrlCAborts(true)

	text, err := prompt.Prompt("inbox> ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", nil
		}

		return "", err
	}

	prompt.AppendHistory(text)

	return text, nil
}

func readLine(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", scanner.Err()
	}

	return scanner.Text(), nil
}

func printInboxHelp(o *IO) {
	o.Println("Usage: lp inbox <subcommand> [args]")
	o.Println("")
	o.Println(inboxHelp)
}
