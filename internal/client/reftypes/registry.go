package reftypes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/caseadmin/internal/client/actions"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// Resources resolves the lifecycle of a kind; *actions.Set implements it.
type Resources interface {
	For(kind models.Kind) (actions.Untyped, bool)
}

// Registry exposes Add/List/Get/Edit/Delete for every reference table over
// models.RefRecord.
type Registry struct {
	res Resources
}

func NewRegistry(res Resources) *Registry {
	return &Registry{res: res}
}

// Fields drives the console form for rt.
func (r *Registry) Fields(rt RefType) []Field { return Fields(rt) }

func (r *Registry) resource(rt RefType) (actions.Untyped, error) {
	if _, ok := table[rt]; !ok {
		return nil, fmt.Errorf("unknown reference type %d", uint8(rt))
	}
	u, ok := r.res.For(rt.Kind())
	if !ok {
		return nil, fmt.Errorf("no resource for %s", rt)
	}
	return u, nil
}

func toRecord(e models.Entity) (models.RefRecord, error) {
	var rec models.RefRecord
	b, err := json.Marshal(e)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(b, &rec)
	return rec, err
}

// fields keeps only the columns rt owns so the union never leaks foreign
// keys into the request body.
func fields(rt RefType, rec models.RefRecord) map[string]any {
	out := map[string]any{}
	for _, f := range Fields(rt) {
		switch f.Key {
		case "name":
			out[f.Key] = rec.Name
		case "description":
			out[f.Key] = rec.Description
		case "componentName":
			out[f.Key] = rec.ComponentName
		case "statusName":
			out[f.Key] = rec.StatusName
		case "isActive":
			out[f.Key] = rec.IsActive
		}
	}
	if rec.Comments != "" {
		out["comments"] = rec.Comments
	}
	if rec.ComponentStatusID.Set() && rt != ComponentStatus {
		out["componentStatusId"] = rec.ComponentStatusID
	}
	return out
}

func (r *Registry) List(ctx context.Context, rt RefType, opts actions.ListOptions) actions.ListResult[models.RefRecord] {
	u, err := r.resource(rt)
	if err != nil {
		return actions.ListResult[models.RefRecord]{Data: []models.RefRecord{}, Detail: err.Error()}
	}
	res := u.ListEntities(ctx, opts)
	out := actions.ListResult[models.RefRecord]{
		Data:      make([]models.RefRecord, 0, len(res.Data)),
		Detail:    res.Detail,
		Metadata:  res.Metadata,
		FromCache: res.FromCache,
	}
	for _, e := range res.Data {
		rec, err := toRecord(e)
		if err != nil {
			out.Detail = err.Error()
			return out
		}
		out.Data = append(out.Data, rec)
	}
	return out
}

func (r *Registry) Get(ctx context.Context, rt RefType, id models.ID) actions.OneResult[models.RefRecord] {
	u, err := r.resource(rt)
	if err != nil {
		return actions.OneResult[models.RefRecord]{Detail: err.Error()}
	}
	res := u.GetEntity(ctx, id, actions.GetOptions{IsIncludeDeleted: true})
	out := actions.OneResult[models.RefRecord]{Detail: res.Detail, FromCache: res.FromCache}
	if res.Detail != "" {
		return out
	}
	rec, err := toRecord(res.Data)
	if err != nil {
		out.Detail = err.Error()
		return out
	}
	out.Data = rec
	return out
}

func (r *Registry) Add(ctx context.Context, rt RefType, rec models.RefRecord) actions.Result {
	u, err := r.resource(rt)
	if err != nil {
		return actions.Result{Detail: err.Error()}
	}
	return u.AddFields(ctx, fields(rt, rec))
}

// Edit updates the record with rec's id; IsRestore also undeletes it.
func (r *Registry) Edit(ctx context.Context, rt RefType, rec models.RefRecord, opts actions.EditOptions) actions.Result {
	u, err := r.resource(rt)
	if err != nil {
		return actions.Result{Detail: err.Error()}
	}
	return u.EditFields(ctx, rec.ID, fields(rt, rec), opts)
}

func (r *Registry) Delete(ctx context.Context, rt RefType, id models.ID, hard bool) actions.Result {
	u, err := r.resource(rt)
	if err != nil {
		return actions.Result{Detail: err.Error()}
	}
	return u.DeleteID(ctx, id, hard)
}
