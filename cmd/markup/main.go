package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-markup/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidUsage   = errors.New("invalid usage")
)

// commands lists the subcommand names.
var commands = map[string]bool{
	"convert":    true,
	"config":     true,
	"doctor":     true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args (os.Args layout) and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	switch {
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case isCommand(cmd):
	case strings.HasPrefix(cmd, "-") || looksLikeInput(cmd):
		// markup notes.mu, markup -o out/ notes.mu
		cmd, rest = "convert", args[1:]
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "config":
		return reportError(runConfigCmd(rest, env), env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return reportError(runCompletion(rest, env), env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-markup %s\n", Version)
		return ExitSuccess
	default:
		return runHelp(rest, env)
	}
}

// runConvertCmd parses convert flags and runs the batch under a signal-aware context.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	configureMaxProcs(flags.common.verbose, env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return reportError(runConvert(ctx, positional, flags, env), env)
}

// reportError prints err and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, env *Environment) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// isCommand reports whether name is a subcommand. Matching is case sensitive.
func isCommand(name string) bool {
	return commands[name]
}

// looksLikeInput reports whether a non-command argument names a source file
// or directory: it has an extension, a path separator, or exists on disk.
func looksLikeInput(arg string) bool {
	if arg == "" {
		return false
	}
	if filepath.Ext(arg) != "" || fileutil.IsFilePath(arg) {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}
