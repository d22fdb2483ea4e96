package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/actions"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/permissions"
	"github.com/dmitrijs2005/caseadmin/internal/client/view"
	"github.com/dmitrijs2005/caseadmin/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("invalid arguments, type 'help' for usage")

// parseArgs splits args into positional values and --flags; "--k=v" keeps
// its value, a bare "--k" maps to "true".
func parseArgs(args []string) ([]string, map[string]string) {
	var pos []string
	flags := map[string]string{}
	for _, arg := range args {
		name, ok := strings.CutPrefix(arg, "--")
		if !ok {
			pos = append(pos, arg)
			continue
		}
		k, v, found := strings.Cut(name, "=")
		if !found {
			v = "true"
		}
		flags[k] = v
	}
	return pos, flags
}

func parseID(s string) (models.ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return models.ID(n), nil
}

func (a *App) resolve(name string) (models.Kind, actions.Untyped, error) {
	kind, err := models.ParseKind(name)
	if err != nil {
		return 0, nil, err
	}
	res, ok := a.set.For(kind)
	if !ok {
		return 0, nil, fmt.Errorf("no actions for %s", kind)
	}
	return kind, res, nil
}

// target resolves "<entity> <id>" arguments.
func (a *App) target(pos []string) (models.Kind, actions.Untyped, models.ID, error) {
	if len(pos) < 2 {
		return 0, nil, 0, errUsage
	}
	kind, res, err := a.resolve(pos[0])
	if err != nil {
		return 0, nil, 0, err
	}
	id, err := parseID(pos[1])
	if err != nil {
		return 0, nil, 0, err
	}
	return kind, res, id, nil
}

// allowed reports whether the signed-in user may run op on kind, telling
// the user when not.
func (a *App) allowed(kind models.Kind, op models.Op) bool {
	u, _ := a.session.User()
	if permissions.CheckOp(u, kind, op) {
		return true
	}
	fmt.Fprintf(a.out, "Permission denied: %s\n", permissions.Name(permissions.Component(kind), op.String()))
	return false
}

// report prints a result the store has not already turned into an alert.
func (a *App) report(r actions.Result) {
	al := a.store.Snapshot().Alert
	if al.Error == "" && al.Success == "" && r.Detail != "" {
		fmt.Fprintln(a.out, r.Detail)
	}
}

func recordFields(rec any) map[string]any {
	out := map[string]any{}
	b, err := json.Marshal(rec)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(b, &out)
	return out
}

func (a *App) confirm(title, action string) (string, error) {
	return view.Modal{
		Title:     title,
		Primary:   view.Button{Label: action},
		Secondary: view.Button{Label: "Cancel"},
	}.Run(a.reader, a.out)
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	remember, err := GetConfirm(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	res := a.auth.Login(ctx, userName, string(password), remember)
	fmt.Fprintln(a.out, res.Detail)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	fmt.Fprintln(a.out, a.auth.Logout(ctx).Detail)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	pos, flags := parseArgs(args)
	if len(pos) < 1 {
		return errUsage
	}
	kind, res, err := a.resolve(pos[0])
	if err != nil {
		return err
	}
	page := 1
	if len(pos) > 1 {
		if page, err = strconv.Atoi(pos[1]); err != nil || page < 1 {
			return fmt.Errorf("invalid page %q", pos[1])
		}
	}
	_, deleted := flags["deleted"]
	_, force := flags["force"]

	lr := res.ListEntities(ctx, actions.ListOptions{
		Metadata: models.RequestMetadata{Page: page, PerPage: a.perPage, IsIncludeDeleted: deleted},
		Force:    force,
	})
	if lr.Detail != "" {
		return nil
	}

	cols := listed(kind)
	tbl := view.Table{Headers: []string{"ID"}, ShowSoftDeleted: deleted}
	for _, c := range cols {
		tbl.Headers = append(tbl.Headers, c.label)
		if strings.EqualFold(flags["sort"], c.name) {
			tbl.SortBy = c.label
		}
	}
	if tbl.SortBy == "" {
		tbl.SortBy = flags["sort"]
	}
	_, tbl.Desc = flags["desc"]
	for _, e := range lr.Data {
		rec := recordFields(e)
		row := view.Row{Cells: []string{strconv.FormatInt(int64(e.GetID()), 10)}, Deleted: e.SoftDeleted()}
		for _, c := range cols {
			row.Cells = append(row.Cells, cellText(rec[c.name]))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	if err := tbl.Render(a.out); err != nil {
		return err
	}
	if md := lr.Metadata; md != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d %s)\n", md.Page, max(md.TotalPages, 1), md.TotalItems, kind.Path())
	}
	if lr.FromCache {
		fmt.Fprintln(a.out, "(from cache, use --force to reload)")
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	pos, _ := parseArgs(args)
	kind, res, id, err := a.target(pos)
	if err != nil {
		return err
	}
	r := res.GetEntity(ctx, id, actions.GetOptions{IsIncludeExtra: true, IsIncludeDeleted: true})
	if r.Detail != "" {
		fmt.Fprintln(a.out, r.Detail)
		return nil
	}
	// The record stays selected while it is on screen.
	res.SelectEntity(r.Data)
	defer res.Unmount()

	rec := recordFields(r.Data)
	tbl := view.Table{Headers: []string{"Field", "Value"}}
	tbl.Rows = append(tbl.Rows, view.Row{Cells: []string{"ID", cellText(rec["id"])}})
	for _, c := range layouts[kind] {
		if c.typ == secret {
			continue
		}
		tbl.Rows = append(tbl.Rows, view.Row{Cells: []string{c.label, cellText(rec[c.name])}})
	}
	for _, k := range extraKeys(kind, rec) {
		tbl.Rows = append(tbl.Rows, view.Row{Cells: []string{k, cellText(rec[k])}})
	}
	fmt.Fprintf(a.out, "%s %d\n", kind.Label(), id)
	return tbl.Render(a.out)
}

// fill runs form until the user saves or cancels; ok is false on cancel.
func (a *App) fill(kind models.Kind, form view.Form, withPassword bool) (map[string]any, bool, error) {
	for {
		fields, err := form.Fill(a.reader, a.out)
		if err != nil {
			return nil, false, err
		}
		if withPassword {
			pw, err := getPassword(a.out)
			if err != nil {
				return nil, false, err
			}
			fields["password"] = string(pw)
			shared.WipeByteArray(pw)
		}
		choice, err := view.Modal{
			Title:     "Save " + kind.Label() + "?",
			Primary:   view.Button{Label: "Save"},
			Secondary: view.Button{Label: "Cancel"},
			Reset:     view.Button{Label: "Reset"},
		}.Run(a.reader, a.out)
		if err != nil {
			return nil, false, err
		}
		switch choice {
		case "Save":
			return fields, true, nil
		case "Cancel":
			fmt.Fprintln(a.out, "Cancelled")
			return nil, false, nil
		}
	}
}

func (a *App) Add(ctx context.Context, args []string) error {
	pos, _ := parseArgs(args)
	if len(pos) < 1 {
		return errUsage
	}
	kind, res, err := a.resolve(pos[0])
	if err != nil {
		return err
	}
	if !a.allowed(kind, models.OpCreate) {
		return nil
	}
	fields, ok, err := a.fill(kind, formFor(kind, "Add "+kind.Label(), nil), kind == models.KindAppUser)
	if err != nil || !ok {
		return err
	}
	a.report(res.AddFields(ctx, fields))
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	pos, _ := parseArgs(args)
	kind, res, id, err := a.target(pos)
	if err != nil {
		return err
	}
	if !a.allowed(kind, models.OpUpdate) {
		return nil
	}
	cur := res.GetEntity(ctx, id, actions.GetOptions{IsIncludeDeleted: true})
	if cur.Detail != "" {
		fmt.Fprintln(a.out, cur.Detail)
		return nil
	}
	title := fmt.Sprintf("Edit %s %d", kind.Label(), id)
	fields, ok, err := a.fill(kind, formFor(kind, title, recordFields(cur.Data)), false)
	if err != nil || !ok {
		return err
	}
	a.report(res.EditFields(ctx, id, fields, actions.EditOptions{}))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	pos, flags := parseArgs(args)
	kind, res, id, err := a.target(pos)
	if err != nil {
		return err
	}
	if !a.allowed(kind, models.OpDelete) {
		return nil
	}
	_, hard := flags["hard"]
	title := fmt.Sprintf("Delete %s %d?", kind.Label(), id)
	if hard {
		title = fmt.Sprintf("Permanently delete %s %d?", kind.Label(), id)
	}
	choice, err := a.confirm(title, "Delete")
	if err != nil {
		return err
	}
	if choice != "Delete" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	a.report(res.DeleteID(ctx, id, hard))
	return nil
}

func (a *App) Restore(ctx context.Context, args []string) error {
	pos, _ := parseArgs(args)
	kind, res, id, err := a.target(pos)
	if err != nil {
		return err
	}
	if !a.allowed(kind, models.OpUpdate) {
		return nil
	}
	a.report(res.EditFields(ctx, id, nil, actions.EditOptions{IsRestore: true}))
	return nil
}

func (a *App) Theme(ctx context.Context, args []string) error {
	on := !a.session.DarkMode()
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "dark":
			on = true
		case "light":
			on = false
		default:
			return errUsage
		}
	}
	if err := a.session.SetDarkMode(ctx, on); err != nil {
		a.log.Warn(ctx, "could not save theme", "err", err)
	}
	if on {
		fmt.Fprintln(a.out, "Theme: dark")
	} else {
		fmt.Fprintln(a.out, "Theme: light")
	}
	return nil
}
