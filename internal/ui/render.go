package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// RenderDashboard writes the dashboard greeting for u, or a sign-in hint when u is nil.
func RenderDashboard(w io.Writer, u *domainauth.User) error {
	if u == nil {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}

	name := u.Name
	if name == "" {
		name = u.Username
	}
	if _, err := fmt.Fprintf(w, "Welcome, %s!\n", name); err != nil {
		return err
	}

	tw := newTabWriter(w)
	writeRow(tw, "Username", u.Username)
	writeRow(tw, "Email", u.Email)
	writeRow(tw, "Roles", roleNames(u))
	if domainauth.IsAdmin(u) {
		writeRow(tw, "Access", "administrator")
	}
	return tw.Flush()
}

// RenderProfile writes every profile field of u.
func RenderProfile(w io.Writer, u *domainauth.User) error {
	if u == nil {
		_, err := fmt.Fprintln(w, "No profile loaded.")
		return err
	}

	tw := newTabWriter(w)
	id := "-"
	if u.ID != nil {
		id = strconv.FormatInt(*u.ID, 10)
	}
	writeRow(tw, "ID", id)
	writeRow(tw, "Username", u.Username)
	writeRow(tw, "Name", u.Name)
	writeRow(tw, "Email", u.Email)
	writeRow(tw, "Roles", roleNames(u))
	writeRow(tw, "Admin", strconv.FormatBool(domainauth.IsAdmin(u)))
	return tw.Flush()
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// tabwriter buffers; write errors surface from Flush.
func writeRow(tw *tabwriter.Writer, label, value string) {
	_, _ = fmt.Fprintf(tw, "%s:\t%s\n", label, value)
}

func roleNames(u *domainauth.User) string {
	if len(u.Roles) == 0 {
		return "-"
	}
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
