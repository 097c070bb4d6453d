// ABOUTME: Subcommands of the planner CLI
// ABOUTME: Each command refreshes the shared state, then renders or mutates through the client

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"content-planner-api/api/middleware"
	"content-planner-api/core/domain"
	"content-planner-api/core/editor"
	"content-planner-api/core/views"
	timeutil "content-planner-api/pkg/utils/time"
	"github.com/spf13/cobra"
)

// load refreshes the items; a failed refresh is fatal for the command
func (a *app) load(ctx context.Context) error {
	if err := a.client.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content from %s: %w", a.baseURL, err)
	}
	return nil
}

// resolveID accepts a full id or an unambiguous prefix as shown by list
func (a *app) resolveID(ref string) (string, error) {
	if _, ok := a.client.Find(ref); ok {
		return ref, nil
	}
	var found []string
	for _, item := range a.client.Items() {
		if strings.HasPrefix(item.ID, ref) {
			found = append(found, item.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no content item matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d items, use a longer id", ref, len(found))
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		sortBy string
		desc   bool
		search string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show content as a sortable table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, ok := views.ParseSortKey(sortBy)
			if !ok {
				return fmt.Errorf("invalid sort column %q", sortBy)
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			view := a.client.Table(views.Table{
				Sort:  views.SortState{Key: key, Desc: desc},
				Query: search,
			})
			fmt.Fprint(cmd.OutOrStdout(), a.render.Table(view))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort column: title, platform, status or target_date")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&search, "search", "", "highlight rows whose title, platform or type contains this text")
	return cmd
}

func newBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show content grouped by workflow status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.render.Board(a.client.Board()))
			return nil
		},
	}
}

func newCalendarCmd(a *app) *cobra.Command {
	var (
		month  string
		ics    string
		mobile bool
	)
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month of content or export it as iCalendar",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			if ics != "" {
				return a.exportICS(cmd.OutOrStdout(), ics)
			}

			start := a.client.Now()
			if month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, a.client.Location())
				if err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
				}
				start = parsed
			}

			if mobile {
				fmt.Fprint(cmd.OutOrStdout(), a.render.Agenda(a.client.Calendar().StartOfMonth(start), a.client.Agenda(start)))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), a.render.Month(a.client.Month(start)))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM; defaults to the current month")
	cmd.Flags().StringVar(&ics, "ics", "", "write every item as an iCalendar file; - writes to stdout")
	cmd.Flags().BoolVar(&mobile, "mobile", false, "show a compact agenda instead of the grid")
	return cmd
}

func (a *app) exportICS(stdout io.Writer, path string) error {
	if path == "-" {
		return a.client.ExportICS(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.client.ExportICS(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d item(s) to %s\n", len(a.client.Items()), path)
	return nil
}

// formFlags binds the editable fields shared by add and edit
type formFlags struct {
	title     string
	platform  string
	status    string
	kind      string
	date      string
	notes     string
	sponsored bool
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title")
	cmd.Flags().StringVar(&f.platform, "platform", "", "YouTube, Short, Reel, Podcast or Email")
	cmd.Flags().StringVar(&f.status, "status", "", "workflow status")
	cmd.Flags().StringVar(&f.kind, "type", "", "free-text content type")
	cmd.Flags().StringVar(&f.date, "date", "", "target date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
	cmd.Flags().BoolVar(&f.sponsored, "sponsored", false, "mark as sponsored")
}

// apply copies the flags the user set onto form
func (f *formFlags) apply(cmd *cobra.Command, form *editor.Form) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		form.Title = f.title
	}
	if changed("platform") {
		p, err := domain.ParsePlatform(f.platform)
		if err != nil {
			return err
		}
		form.Platform = p
	}
	if changed("status") {
		s, err := domain.ParseStatus(f.status)
		if err != nil {
			return err
		}
		form.Status = s
	}
	if changed("type") {
		form.Type = f.kind
	}
	if changed("date") {
		form.Date = f.date
	}
	if changed("notes") {
		form.Notes = f.notes
	}
	if changed("sponsored") {
		form.IsSponsored = f.sponsored
	}
	return nil
}

func (a *app) saveForm(cmd *cobra.Command, flags *formFlags, verb string) error {
	ed := a.client.Editor()
	var applyErr error
	ed.Edit(func(form *editor.Form) { applyErr = flags.apply(cmd, form) })
	if applyErr != nil {
		ed.Cancel()
		return applyErr
	}

	saved, err := ed.Save(cmd.Context())
	if err != nil {
		ed.Cancel()
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q (%s, %s, %s)\n",
		verb,
		shortID(saved.ID),
		saved.Title,
		a.render.lang.Platform(saved.Platform),
		a.render.lang.Status(saved.Status),
		timeutil.FormatDate(saved.TargetDate, a.client.Location()),
	)
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	flags := &formFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a content item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			a.client.Editor().OpenCreate()
			return a.saveForm(cmd, flags, "Created")
		},
	}
	flags.bind(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	flags := &formFlags{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a content item; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			item, _ := a.client.Find(id)
			a.client.Editor().OpenEdit(item)
			return a.saveForm(cmd, flags, "Updated")
		},
	}
	flags.bind(cmd)
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a content item to another status column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			moved, err := a.client.Move(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			if !moved {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in %s\n", shortID(id), a.render.lang.Status(status))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", shortID(id), a.render.lang.Status(status))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a content item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
			return nil
		},
	}
}

func newDeleteAllCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every content item you are allowed to delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete everything without --yes")
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			before := len(a.client.Items())
			if err := a.client.DeleteAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d item(s)\n", before-len(a.client.Items()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	var (
		user string
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:         "token",
		Short:       "Sign a bearer token with JWT_SECRET",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				return errors.New("--user is required")
			}
			r := domain.Role(strings.ToLower(role))
			if r != domain.RoleAdmin && r != domain.RoleStandard {
				return fmt.Errorf("invalid role %q", role)
			}
			token, err := middleware.IssueToken(a.cfg.Auth.JWTSecret, user, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id to put in the subject claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStandard), "admin or standard")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
