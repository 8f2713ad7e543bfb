package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lifeplanner/internal/config"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env []string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Default workDir to current directory
	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	// Load and validate config
	cliOverrides := config.Config{BaseDir: flags.baseDir}

	cfg, sources, err := config.Load(workDir, flags.configPath, cliOverrides, flags.hasBaseDirOverride, env)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]

	// Handle help flags
	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	// Create IO for command
	ioCtx := NewIO(out, errOut)

	planner := newApp(cfg, workDir)

	// Dispatch to command
	var cmdErr error

	switch cmd {
	case "goal":
		cmdErr = cmdGoal(ioCtx, planner, flags.remaining[1:])
	case "inbox":
		cmdErr = cmdInbox(ioCtx, planner, in, flags.remaining[1:])
	case "triage":
		cmdErr = cmdTriage(ioCtx, planner, flags.remaining[1:])
	case "issue":
		cmdErr = cmdIssue(ioCtx, planner, flags.remaining[1:])
	case "task":
		cmdErr = cmdTask(ioCtx, planner, flags.remaining[1:])
	case "week":
		cmdErr = cmdWeek(ioCtx, planner, flags.remaining[1:])
	case "doc":
		cmdErr = cmdDoc(ioCtx, planner, flags.remaining[1:])
	case "new":
		cmdErr = cmdNew(ioCtx, planner, flags.remaining[1:])
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	// Fatal error
	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	// Finish handles warnings and exit code
	return ioCtx.Finish()
}

type globalFlags struct {
	workDir            string
	configPath         string
	baseDir            string
	hasBaseDirOverride bool
	remaining          []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (vault directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --dir flag (planner folder inside the vault)
	if arg == "--dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.baseDir = args[idx+1]
		flags.hasBaseDirOverride = true

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--dir="); ok {
		flags.baseDir = after
		flags.hasBaseDirOverride = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(o *IO, cfg config.Config, sources config.Sources) error {
	formatted, err := config.Format(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	// Print sources
	o.Println("")
	o.Println("# Sources:")

	if sources.Global != "" {
		o.Println("#   global:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `lp - life planner on a markdown vault

Usage: lp [options] <command> [args]

Options:
  -C, --cwd <dir>     Run as if started in <dir> (the vault root)
  -c, --config <file> Use specified config file
  --dir <folder>      Override the planner folder inside the vault

Commands:`)
	fprintln(writer, goalHelp)
	fprintln(writer, inboxHelp)
	fprintln(writer, triageHelp)
	fprintln(writer, issueHelp)
	fprintln(writer, taskHelp)
	fprintln(writer, weekHelp)
	fprintln(writer, docHelp)
	fprintln(writer, newHelp)
	fprintln(writer, `  print-config                 Show resolved configuration`)
}
