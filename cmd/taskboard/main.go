// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taskboard-foundation/taskboard/api"
	"github.com/taskboard-foundation/taskboard/lib/config"
	"github.com/taskboard-foundation/taskboard/lib/session"
	"github.com/taskboard-foundation/taskboard/lib/version"
)

// configPath holds the global --config flag value; empty means the
// TASKBOARD_CONFIG environment variable (or defaults) decide.
var configPath string

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	arguments, err := extractConfigFlag(os.Args[1:])
	if err != nil {
		return err
	}
	if len(arguments) < 1 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	subcommand := arguments[0]
	arguments = arguments[1:]
	switch subcommand {
	case "login":
		return runLogin(ctx, arguments)
	case "logout":
		return runLogout(arguments)
	case "register":
		return runRegister(ctx, arguments)
	case "whoami":
		return runWhoami(ctx, arguments)
	case "projects":
		return runProjects(ctx, arguments)
	case "tasks":
		return runTasks(ctx, arguments)
	case "users":
		return runUsers(ctx, arguments)
	case "teams":
		return runTeams(ctx, arguments)
	case "search":
		return runSearch(ctx, arguments)
	case "version":
		return runVersion(arguments)
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: taskboard [--config <path>] <subcommand> [flags]

Subcommands:
  login       Authenticate and save the session locally
  logout      Discard the saved session
  register    Create an account and log in
  whoami      Show the authenticated user
  projects    List or create projects (projects list|create|teams)
  tasks       Work with tasks (tasks list|show|create|update|status|delete)
  users       List users
  teams       List teams
  search      Search tasks, projects, and users
  version     Print version information

Global flags:
  --config <path>   Configuration file (default: $TASKBOARD_CONFIG, else built-in defaults)

Run 'taskboard <subcommand> --help' for subcommand flags.
`)
}

// extractConfigFlag peels the global --config flag out of the
// argument list, wherever it appears, so it works both before and
// after the subcommand. The remaining arguments are returned for the
// subcommand flag sets.
func extractConfigFlag(arguments []string) ([]string, error) {
	rest := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		switch {
		case argument == "--config":
			if index+1 >= len(arguments) {
				return nil, fmt.Errorf("--config requires a path")
			}
			configPath = arguments[index+1]
			index++
		case strings.HasPrefix(argument, "--config="):
			configPath = strings.TrimPrefix(argument, "--config=")
			if configPath == "" {
				return nil, fmt.Errorf("--config requires a path")
			}
		default:
			rest = append(rest, argument)
		}
	}
	return rest, nil
}

// loadConfiguration resolves the configuration: the --config flag
// wins, then TASKBOARD_CONFIG, then built-in defaults.
func loadConfiguration() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// newCommandLogger creates the structured logger for one CLI
// invocation at the configured minimum level. Human-readable text
// when stderr is a terminal, JSON when piped (scripts, CI), so output
// stays machine-parseable in automation.
func newCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// newClient wires config, logger, session store, and API client for
// one invocation. The saved session (if any) is loaded so requests
// carry the bearer token.
func newClient() (*api.Client, error) {
	configuration, err := loadConfiguration()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger := newCommandLogger(configuration.Log.SlogLevel())

	sessionPath := configuration.SessionFile
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	sessions := session.NewStore(sessionPath)
	if err := sessions.Load(); err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: configuration.API.BaseURL,
		Session: sessions,
		HTTPClient: &http.Client{
			Timeout: configuration.RequestTimeout(),
		},
		Logger: logger,
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "Session expired — run 'taskboard login' to authenticate again.")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

func runVersion(arguments []string) error {
	flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
	full := flagSet.Bool("full", false, "include Go runtime and platform details")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	if *full {
		fmt.Printf("taskboard %s\n", version.Full())
	} else {
		fmt.Printf("taskboard %s\n", version.Info())
	}
	return nil
}
