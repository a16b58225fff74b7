package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsxray/jsxray/pkg/linter"
	mcpserver "github.com/jsxray/jsxray/pkg/mcp"
	"github.com/jsxray/jsxray/pkg/report"
	"github.com/jsxray/jsxray/pkg/rules"
	"github.com/jsxray/jsxray/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "lint":
		os.Exit(runLint(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "serve":
		os.Exit(runServe(os.Args[2:]))
	case "rules":
		runRules()
	case "version":
		fmt.Printf("jsxray %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runLint(args []string) int {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	opts := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "emit diagnostics as JSON")
	_ = fs.Parse(args)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	l, logger, code := buildLinter(opts)
	if code != 0 {
		return code
	}
	defer l.Close()

	collector, stats, err := l.Run(root)
	if err != nil {
		logger.Error("lint run failed", "error", err)
		return 1
	}
	issues := collector.Issues()
	if *jsonOut {
		if err := report.WriteJSON(os.Stdout, issues); err != nil {
			logger.Error("failed to write output", "error", err)
			return 1
		}
	} else {
		report.WriteText(os.Stdout, issues)
	}
	if stats.FilesFailed > 0 || hasErrors(issues) {
		return 1
	}
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	opts := addCommonFlags(fs)
	debounce := fs.Int("debounce", linter.DefaultWatchOptions().DebounceMs, "debounce window in milliseconds")
	_ = fs.Parse(args)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	l, logger, code := buildLinter(opts)
	if code != 0 {
		return code
	}
	defer l.Close()

	// Initial pass so the first report doesn't wait for a save.
	collector, _, err := l.Run(root)
	if err != nil {
		logger.Error("lint run failed", "error", err)
		return 1
	}
	report.WriteText(os.Stdout, collector.Issues())

	w, err := linter.NewWatcher(l, linter.WatchOptions{DebounceMs: *debounce},
		func(path string, issues []report.Issue) {
			report.WriteText(os.Stdout, issues)
		}, logger)
	if err != nil {
		logger.Error("failed to create watcher", "error", err)
		return 1
	}
	if err := w.Start(root); err != nil {
		logger.Error("failed to start watcher", "error", err)
		return 1
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return 0
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	opts := addCommonFlags(fs)
	_ = fs.Parse(args)

	l, logger, code := buildLinter(opts)
	if code != 0 {
		return code
	}
	defer l.Close()

	srv := mcpserver.NewServer(l, logger)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

func runRules() {
	for _, r := range rules.All() {
		meta := r.Meta()
		fmt.Printf("%-24s %-8s %s\n", r.Name(), meta.Severity, meta.Description)
	}
}

func buildLinter(opts *commonOpts) (*linter.Linter, *slog.Logger, int) {
	logger := util.NewLogger(os.Stderr, opts.logLevel, opts.logJSON)

	cfg := opts.toConfig()
	l, err := linter.New(cfg, logger)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return nil, logger, 1
	}
	return l, logger, 0
}

func hasErrors(issues []report.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == report.SeverityError {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println("Usage: jsxray <command> [flags] [path]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  lint       Lint a directory and print diagnostics")
	fmt.Println("  watch      Lint continuously as files change")
	fmt.Println("  serve      Start the MCP server on stdio")
	fmt.Println("  rules      List the built-in rules")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
