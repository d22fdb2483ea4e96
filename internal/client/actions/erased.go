package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// Untyped is the kind-erased face of a Resource. The console and the
// reference-type registry work through it with field maps keyed by JSON
// name.
type Untyped interface {
	Kind() models.Kind
	ListEntities(ctx context.Context, opts ListOptions) ListResult[models.Entity]
	GetEntity(ctx context.Context, id models.ID, opts GetOptions) OneResult[models.Entity]
	AddFields(ctx context.Context, fields map[string]any) Result
	EditFields(ctx context.Context, id models.ID, fields map[string]any, opts EditOptions) Result
	DeleteID(ctx context.Context, id models.ID, hard bool) Result
	SelectID(ctx context.Context, id models.ID) bool
	SelectEntity(rec models.Entity) bool
	Unmount()
}

var _ Untyped = (*Resource[models.Client])(nil)

func decodeFields[T any](fields map[string]any) (T, error) {
	var rec T
	b, err := json.Marshal(fields)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(b, &rec)
	return rec, err
}

// toFields is the inverse of decodeFields.
func toFields(rec any) (map[string]any, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	err = json.Unmarshal(b, &m)
	return m, err
}

func (r *Resource[T]) ListEntities(ctx context.Context, opts ListOptions) ListResult[models.Entity] {
	res := r.List(ctx, opts)
	out := ListResult[models.Entity]{
		Data:      make([]models.Entity, 0, len(res.Data)),
		Detail:    res.Detail,
		Metadata:  res.Metadata,
		FromCache: res.FromCache,
	}
	for _, rec := range res.Data {
		out.Data = append(out.Data, rec)
	}
	return out
}

func (r *Resource[T]) GetEntity(ctx context.Context, id models.ID, opts GetOptions) OneResult[models.Entity] {
	res := r.Get(ctx, id, opts)
	out := OneResult[models.Entity]{Detail: res.Detail, FromCache: res.FromCache}
	if res.Detail == "" {
		out.Data = res.Data
	}
	return out
}

func (r *Resource[T]) AddFields(ctx context.Context, fields map[string]any) Result {
	rec, err := decodeFields[T](fields)
	if err != nil {
		return Result{Detail: fmt.Sprintf("invalid input: %v", err)}
	}
	return r.Add(ctx, models.NewForm(rec))
}

// EditFields loads the record, overlays fields and updates it.
func (r *Resource[T]) EditFields(ctx context.Context, id models.ID, fields map[string]any, opts EditOptions) Result {
	cur := r.Get(ctx, id, GetOptions{IsIncludeDeleted: true})
	if cur.Detail != "" {
		return Result{Detail: cur.Detail}
	}
	merged, err := toFields(cur.Data)
	if err != nil {
		return Result{Detail: fmt.Sprintf("invalid input: %v", err)}
	}
	maps.Copy(merged, fields)
	merged["id"] = id
	rec, err := decodeFields[T](merged)
	if err != nil {
		return Result{Detail: fmt.Sprintf("invalid input: %v", err)}
	}
	return r.Edit(ctx, models.NewForm(rec), opts)
}

func (r *Resource[T]) DeleteID(ctx context.Context, id models.ID, hard bool) Result {
	rec, err := decodeFields[T](map[string]any{"id": id})
	if err != nil {
		return Result{Detail: fmt.Sprintf("invalid input: %v", err)}
	}
	form := models.NewForm(rec)
	form.IsHardDelete = hard
	return r.Delete(ctx, form)
}

// SelectEntity selects rec when it is a record of this kind.
func (r *Resource[T]) SelectEntity(rec models.Entity) bool {
	v, ok := rec.(T)
	if !ok {
		return false
	}
	r.Select(v)
	return true
}

// SelectID fetches (or finds) the record and selects it.
func (r *Resource[T]) SelectID(ctx context.Context, id models.ID) bool {
	res := r.Get(ctx, id, GetOptions{IsIncludeExtra: true})
	if res.Detail != "" {
		return false
	}
	r.Select(res.Data)
	return true
}
