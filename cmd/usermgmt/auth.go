package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/target/usermgmt-ui/internal/bootstrap"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	"github.com/target/usermgmt-ui/internal/service"
)

type loginOptions struct {
	Username      string
	Password      string
	PasswordStdin bool
}

func parseLoginFlags(args []string, stderr io.Writer) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Account username (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return loginOptions{}, errors.New("--username is required")
	}
	if opts.Password != "" && opts.PasswordStdin {
		return loginOptions{}, errors.New("--password and --password-stdin are mutually exclusive")
	}
	return opts, nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args, cmdCtx.Err)
	if err != nil {
		return err
	}
	if opts.PasswordStdin {
		if opts.Password, err = readPassword(cmdCtx.In); err != nil {
			return err
		}
	}

	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		if _, err := sess.Client.Login(cmdCtx.Ctx, domainauth.Credentials{
			Username: opts.Username,
			Password: opts.Password,
		}); err != nil {
			return fmt.Errorf("login: %w", err)
		}

		sess.Client.Wait()
		u, ok := sess.Client.CurrentUser()
		if !ok {
			return writeln(cmdCtx.Out, "Logged in; profile is not available yet.")
		}
		return writef(cmdCtx.Out, "Logged in as %s.\n", u.Username)
	})
}

type registerOptions struct {
	Username string
	Email    string
	Name     string
	Password string
}

func parseRegisterFlags(args []string, stderr io.Writer) (registerOptions, error) {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts registerOptions
	fs.StringVar(&opts.Username, "username", "", "Desired username")
	fs.StringVar(&opts.Email, "email", "", "Email address")
	fs.StringVar(&opts.Name, "name", "", "Display name")
	fs.StringVar(&opts.Password, "password", "", "Password")

	if err := fs.Parse(args); err != nil {
		return registerOptions{}, err
	}
	return opts, nil
}

// runRegister sends the request as given; the server owns validation.
func runRegister(cmdCtx *commandContext, args []string) error {
	opts, err := parseRegisterFlags(args, cmdCtx.Err)
	if err != nil {
		return err
	}

	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		out, err := sess.Client.Register(cmdCtx.Ctx, domainauth.RegistrationRequest{
			Username: opts.Username,
			Email:    opts.Email,
			Password: opts.Password,
			Name:     opts.Name,
		})
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		if !out.Success {
			return fmt.Errorf("register: %s", out.Message)
		}
		return writeln(cmdCtx.Out, out.Message)
	})
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		if err := sess.Client.Logout(cmdCtx.Ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return writeln(cmdCtx.Out, "Logged out.")
	})
}

func runStatus(cmdCtx *commandContext, _ []string) error {
	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		token, ok := sess.Client.Token(cmdCtx.Ctx)
		if !ok {
			return writeln(cmdCtx.Out, "Authenticated: false")
		}
		if err := writeln(cmdCtx.Out, "Authenticated: true"); err != nil {
			return err
		}
		return printTokenInfo(cmdCtx.Out, token, time.Now())
	})
}

// printTokenInfo shows unverified JWT claims for information only.
func printTokenInfo(w io.Writer, token string, now time.Time) error {
	info, err := service.InspectToken(token)
	if errors.Is(err, service.ErrOpaqueToken) {
		return writeln(w, "Token: opaque")
	}

	if info.Subject != "" {
		if err := writef(w, "Subject: %s\n", info.Subject); err != nil {
			return err
		}
	}
	if info.ExpiresAt.IsZero() {
		return writeln(w, "Expires: never")
	}
	state := "valid"
	if info.Expired(now) {
		state = "expired"
	}
	return writef(w, "Expires: %s (%s)\n", info.ExpiresAt.UTC().Format(time.RFC3339), state)
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		sess.Client.Wait()
		u, ok := sess.Client.CurrentUser()
		if !ok {
			return errors.New("not signed in")
		}
		role := "user"
		if domainauth.IsAdmin(&u) {
			role = "admin"
		}
		return writef(cmdCtx.Out, "%s (%s)\n", u.Username, role)
	})
}
