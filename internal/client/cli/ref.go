package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/caseadmin/internal/client/actions"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/reftypes"
	"github.com/dmitrijs2005/caseadmin/internal/client/view"
)

// refValues maps rec onto its column keys with JSON-typed values, as the
// edit form expects.
func refValues(rec models.RefRecord) map[string]any {
	return map[string]any{
		"name":          rec.Name,
		"description":   rec.Description,
		"componentName": rec.ComponentName,
		"statusName":    rec.StatusName,
		"isActive":      rec.IsActive,
	}
}

func applyRef(rt reftypes.RefType, rec *models.RefRecord, fields map[string]any) error {
	for _, f := range reftypes.Fields(rt) {
		v, ok := fields[f.Key]
		if !ok {
			continue
		}
		if err := reftypes.Apply(rec, f, fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}

// Ref manages the reference tables:
//
//	ref list <type> [page] [--deleted] [--force]
//	ref add <type>
//	ref edit <type> <id>
//	ref delete <type> <id> [--hard]
//	ref restore <type> <id>
func (a *App) Ref(ctx context.Context, args []string) error {
	pos, flags := parseArgs(args)
	if len(pos) < 2 {
		return errUsage
	}
	rt, err := reftypes.Parse(pos[1])
	if err != nil {
		return err
	}
	var id models.ID
	needID := pos[0] == "edit" || pos[0] == "delete" || pos[0] == "restore"
	if needID {
		if len(pos) < 3 {
			return errUsage
		}
		if id, err = parseID(pos[2]); err != nil {
			return err
		}
	}

	switch pos[0] {
	case "list":
		return a.refList(ctx, rt, pos[2:], flags)
	case "add":
		if !a.allowed(rt.Kind(), models.OpCreate) {
			return nil
		}
		fields, ok, err := a.fill(rt.Kind(), formFor(rt.Kind(), "Add "+rt.Label(), nil), false)
		if err != nil || !ok {
			return err
		}
		var rec models.RefRecord
		if err := applyRef(rt, &rec, fields); err != nil {
			return err
		}
		a.report(a.refs.Add(ctx, rt, rec))
	case "edit":
		if !a.allowed(rt.Kind(), models.OpUpdate) {
			return nil
		}
		cur := a.refs.Get(ctx, rt, id)
		if cur.Detail != "" {
			fmt.Fprintln(a.out, cur.Detail)
			return nil
		}
		title := fmt.Sprintf("Edit %s %d", rt.Label(), id)
		fields, ok, err := a.fill(rt.Kind(), formFor(rt.Kind(), title, refValues(cur.Data)), false)
		if err != nil || !ok {
			return err
		}
		rec := cur.Data
		if err := applyRef(rt, &rec, fields); err != nil {
			return err
		}
		a.report(a.refs.Edit(ctx, rt, rec, actions.EditOptions{}))
	case "delete":
		if !a.allowed(rt.Kind(), models.OpDelete) {
			return nil
		}
		choice, err := a.confirm(fmt.Sprintf("Delete %s %d?", rt.Label(), id), "Delete")
		if err != nil {
			return err
		}
		if choice != "Delete" {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		_, hard := flags["hard"]
		a.report(a.refs.Delete(ctx, rt, id, hard))
	case "restore":
		if !a.allowed(rt.Kind(), models.OpUpdate) {
			return nil
		}
		cur := a.refs.Get(ctx, rt, id)
		if cur.Detail != "" {
			fmt.Fprintln(a.out, cur.Detail)
			return nil
		}
		a.report(a.refs.Edit(ctx, rt, cur.Data, actions.EditOptions{IsRestore: true}))
	default:
		return errUsage
	}
	return nil
}

func (a *App) refList(ctx context.Context, rt reftypes.RefType, rest []string, flags map[string]string) error {
	page := 1
	if len(rest) > 0 {
		p, err := strconv.Atoi(rest[0])
		if err != nil || p < 1 {
			return fmt.Errorf("invalid page %q", rest[0])
		}
		page = p
	}
	_, deleted := flags["deleted"]
	_, force := flags["force"]

	lr := a.refs.List(ctx, rt, actions.ListOptions{
		Metadata: models.RequestMetadata{Page: page, PerPage: a.perPage, IsIncludeDeleted: deleted},
		Force:    force,
	})
	if lr.Detail != "" {
		return nil
	}

	fields := reftypes.Fields(rt)
	tbl := view.Table{Headers: []string{"ID"}, ShowSoftDeleted: deleted}
	for _, f := range fields {
		tbl.Headers = append(tbl.Headers, f.Label)
	}
	for _, rec := range lr.Data {
		row := view.Row{Cells: []string{reftypes.Value(rec, "id")}, Deleted: rec.IsDeleted}
		for _, f := range fields {
			row.Cells = append(row.Cells, reftypes.Value(rec, f.Key))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl.Render(a.out)
}
