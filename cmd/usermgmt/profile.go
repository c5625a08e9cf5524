package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/target/usermgmt-ui/internal/bootstrap"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
	apperrors "github.com/target/usermgmt-ui/internal/errors"
	"github.com/target/usermgmt-ui/internal/ui"
)

type profileOptions struct {
	JSON  bool
	Query string
}

func parseProfileFlags(args []string, stderr io.Writer) (profileOptions, error) {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts profileOptions
	fs.BoolVar(&opts.JSON, "json", false, "Print the raw profile as JSON")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the profile JSON (implies --json)")

	if err := fs.Parse(args); err != nil {
		return profileOptions{}, err
	}
	if opts.Query != "" {
		if _, err := jmespath.Compile(opts.Query); err != nil {
			return profileOptions{}, apperrors.ValidationField("query", err.Error())
		}
		opts.JSON = true
	}
	return opts, nil
}

func runProfile(cmdCtx *commandContext, args []string) error {
	opts, err := parseProfileFlags(args, cmdCtx.Err)
	if err != nil {
		return err
	}

	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		view := ui.NewProfile(sess.Client)
		if err := view.Load(cmdCtx.Ctx); err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if !opts.JSON {
			return ui.RenderProfile(cmdCtx.Out, view.User())
		}
		return printProfileJSON(cmdCtx.Out, view.User(), opts.Query)
	})
}

func printProfileJSON(w io.Writer, u *domainauth.User, query string) error {
	if u == nil {
		return errors.New("no profile loaded")
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	var out any = json.RawMessage(raw)
	if query != "" {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode profile: %w", err)
		}
		result, err := jmespath.Search(query, doc)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeValidation, "evaluate query %q", query)
		}
		if result == nil {
			return apperrors.NotFoundf("query %q matched nothing", query)
		}
		out = result
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runDashboard(cmdCtx *commandContext, _ []string) error {
	return cmdCtx.withSession(func(sess *bootstrap.Session) error {
		sess.Client.Wait()
		dash := ui.NewDashboard(sess.Client)
		defer dash.Close()
		return ui.RenderDashboard(cmdCtx.Out, dash.User())
	})
}
