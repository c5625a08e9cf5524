package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/target/usermgmt-ui/config"
	"github.com/target/usermgmt-ui/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}

// withSession opens the configured session, runs fn, and waits for background hydration before closing.
func (c *commandContext) withSession(fn func(sess *bootstrap.Session) error) error {
	sess, err := bootstrap.NewSession(c.Ctx, &c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			c.Logger.WarnContext(c.Ctx, "close session failed", "error", cerr)
		}
	}()
	return fn(sess)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)) //nolint:forbidigo // CLI exit status
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_ = printUsage(stderr)
		return 2
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(stderr)
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger := bootstrap.InitLogger(config.LogConfig{Level: slog.LevelInfo, Format: config.LogFormatText})
		logger.Error("load config", "error", err)
		return 1
	}
	logger := bootstrap.InitLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		In:     stdin,
		Out:    stdout,
		Err:    stderr,
	}
	if runErr := cmd.run(cmdCtx, args[1:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		_ = writef(stderr, "error: %v\n", runErr)
		return 1
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in and store the session token",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create a new account",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored session token",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show whether a session token is stored and what it claims",
			run:         runStatus,
		},
		"whoami": {
			name:        "whoami",
			description: "Print the cached current user",
			run:         runWhoami,
		},
		"profile": {
			name:        "profile",
			description: "Fetch the profile from the server (--json, --query)",
			run:         runProfile,
		},
		"dashboard": {
			name:        "dashboard",
			description: "Show the dashboard for the current user",
			run:         runDashboard,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: usermgmt <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-12s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
