// Package actions runs the CRUD lifecycle of every entity kind against the
// backend and records each step in the store.
//
// A mutation or list read dispatches REQUEST, then exactly one of SUCCESS or
// FAILURE, then COMPLETE. Nothing here returns an error: failures come back
// as a Detail message on the result, already reduced into the store's alert.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/api"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/store"
	"github.com/dmitrijs2005/caseadmin/internal/client/validate"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Fetcher is the transport used by actions; *api.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, opts api.Options) (*api.Envelope, error)
}

// Endpoints resolves the template for a kind and op; *config.Config
// implements it.
type Endpoints interface {
	Endpoint(kind models.Kind, op models.Op) (string, bool)
}

// Deps are the collaborators shared by every resource.
type Deps struct {
	Fetcher   Fetcher
	Store     *store.Store
	Endpoints Endpoints
	Log       logging.Logger
	Metrics   *metrics.Metrics
}

// Descriptor parametrizes the lifecycle for one entity kind.
type Descriptor[T models.Entity] struct {
	Kind     models.Kind
	Validate func(T) error
}

// Result is returned by mutations.
type Result struct {
	Success     bool
	Detail      string
	FieldErrors validate.Errors
}

// ListResult is returned by List. Data is never nil.
type ListResult[T any] struct {
	Data      []T
	Detail    string
	Metadata  *models.ResponseMetadata
	FromCache bool
}

// OneResult is returned by Get.
type OneResult[T any] struct {
	Data      T
	Detail    string
	FromCache bool
}

type EditOptions struct {
	IsRestore bool
}

type ListOptions struct {
	Metadata models.RequestMetadata
	// Force skips the cache check.
	Force bool
}

type GetOptions struct {
	IsIncludeExtra   bool
	IsIncludeDeleted bool
}

// Resource runs the lifecycle for entities of type T.
type Resource[T models.Entity] struct {
	desc Descriptor[T]
	deps Deps
	log  logging.Logger
}

func NewResource[T models.Entity](desc Descriptor[T], deps Deps) *Resource[T] {
	log := deps.Log
	if log == nil {
		log = logging.NewNop()
	}
	return &Resource[T]{desc: desc, deps: deps, log: log.With("entity", desc.Kind.String())}
}

func (r *Resource[T]) Kind() models.Kind { return r.desc.Kind }

func (r *Resource[T]) dispatch(op models.Op, phase store.Phase, msg string) {
	r.deps.Store.Dispatch(store.Lifecycle{Kind: r.desc.Kind, Op: op, Phase: phase, Message: msg})
}

func (r *Resource[T]) fail(op models.Op, msg string) string {
	r.dispatch(op, store.PhaseFailure, msg)
	return msg
}

// transportFailure logs err under the failing action's name and returns the
// generic message shown to the user.
func (r *Resource[T]) transportFailure(ctx context.Context, op models.Op, err error) string {
	action := store.Lifecycle{Kind: r.desc.Kind, Op: op, Phase: store.PhaseFailure}.Type()
	if errors.Is(err, context.Canceled) {
		r.log.Warn(ctx, "request cancelled", "action", action)
	} else {
		r.log.Error(ctx, "request failed", "action", action, "err", err)
	}
	return common.MsgSomethingWentWrong
}

func (r *Resource[T]) endpoint(op models.Op) (string, error) {
	tpl, ok := r.deps.Endpoints.Endpoint(r.desc.Kind, op)
	if !ok {
		return "", common.ErrNoEndpoint
	}
	return tpl, nil
}

// itemEndpoint makes sure tpl addresses a single record.
func itemEndpoint(tpl string) string {
	if strings.Contains(tpl, "{id}") {
		return tpl
	}
	return strings.TrimSuffix(tpl, "/") + "/{id}"
}

func idParams(id models.ID) map[string]string {
	return map[string]string{"id": strconv.FormatInt(int64(id), 10)}
}

// withoutID returns record as a JSON object minus its id; ids are assigned
// by the backend.
func withoutID(record any) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}

type request struct {
	method string
	tpl    string
	opts   api.Options
}

// mutate runs one CREATE/UPDATE/DELETE lifecycle. check runs after REQUEST;
// build prepares the call once validation passed.
func (r *Resource[T]) mutate(ctx context.Context, op models.Op, check func() error, build func(tpl string) (request, error)) Result {
	r.dispatch(op, store.PhaseRequest, "")
	defer r.dispatch(op, store.PhaseComplete, "")

	if check != nil {
		if err := check(); err != nil {
			var fe validate.Errors
			errors.As(err, &fe)
			return Result{Detail: r.fail(op, err.Error()), FieldErrors: fe}
		}
	}

	tpl, err := r.endpoint(op)
	if err != nil {
		return Result{Detail: r.fail(op, r.transportFailure(ctx, op, err))}
	}
	req, err := build(tpl)
	if err != nil {
		return Result{Detail: r.fail(op, r.transportFailure(ctx, op, err))}
	}
	req.opts.Method = req.method

	env, err := r.deps.Fetcher.Fetch(ctx, req.tpl, req.opts)
	if err != nil {
		return Result{Detail: r.fail(op, r.transportFailure(ctx, op, err))}
	}
	if msg := env.Err(); msg != "" {
		return Result{Detail: r.fail(op, msg)}
	}

	msg := common.MutationSuccess(r.desc.Kind.Label(), op.Verb())
	r.dispatch(op, store.PhaseSuccess, msg)
	return Result{Success: true, Detail: msg}
}

func (r *Resource[T]) validator(record T) func() error {
	if r.desc.Validate == nil {
		return nil
	}
	return func() error { return r.desc.Validate(record) }
}

func requireID(id models.ID) func() error {
	return func() error {
		if !id.Set() {
			e := validate.Errors{}
			e.Add("id", "Id is required")
			return e
		}
		return nil
	}
}

// Add creates form.Record. Any id on the record is ignored.
func (r *Resource[T]) Add(ctx context.Context, form models.FormData[T]) Result {
	return r.mutate(ctx, models.OpCreate, r.validator(form.Record), func(tpl string) (request, error) {
		body, err := withoutID(form.Record)
		if err != nil {
			return request{}, err
		}
		return request{method: http.MethodPost, tpl: tpl, opts: api.Options{Body: body}}, nil
	})
}

// Edit updates form.Record. With IsHardDelete set on the form the record is
// permanently deleted instead, overriding any restore.
func (r *Resource[T]) Edit(ctx context.Context, form models.FormData[T], opts EditOptions) Result {
	if form.IsHardDelete {
		return r.Delete(ctx, form)
	}
	id := form.Record.GetID()
	check := func() error {
		if err := requireID(id)(); err != nil {
			return err
		}
		if v := r.validator(form.Record); v != nil {
			return v()
		}
		return nil
	}
	return r.mutate(ctx, models.OpUpdate, check, func(tpl string) (request, error) {
		q := map[string]string{}
		if opts.IsRestore {
			q[common.QueryRestore] = "true"
		}
		return request{method: http.MethodPut, tpl: itemEndpoint(tpl), opts: api.Options{
			PathParams:  idParams(id),
			QueryParams: q,
			Body:        form.Record,
		}}, nil
	})
}

// Delete soft-deletes form.Record, or removes it when IsHardDelete is set.
func (r *Resource[T]) Delete(ctx context.Context, form models.FormData[T]) Result {
	id := form.Record.GetID()
	return r.mutate(ctx, models.OpDelete, requireID(id), func(tpl string) (request, error) {
		return request{method: http.MethodDelete, tpl: itemEndpoint(tpl), opts: api.Options{
			PathParams:  idParams(id),
			QueryParams: map[string]string{common.QueryHardDelete: strconv.FormatBool(form.IsHardDelete)},
		}}, nil
	})
}

var metadataEqual = cmpopts.EquateEmpty()

// List returns the entity list for opts.Metadata. When the store already
// holds a non-empty list fetched with equal metadata a copy of it is
// returned without dispatching or touching the network. The returned slice
// never aliases store state.
func (r *Resource[T]) List(ctx context.Context, opts ListOptions) ListResult[T] {
	md := opts.Metadata
	md.Filters = maps.Clone(md.Filters)

	if !opts.Force {
		es := r.deps.Store.Entity(r.desc.Kind)
		if es.Metadata != nil && store.HasItems(r.deps.Store, r.desc.Kind) && cmp.Equal(*es.Metadata, md, metadataEqual) {
			if items, ok := es.Items.([]T); ok {
				r.deps.Metrics.ObserveCacheHit(r.desc.Kind.String())
				r.log.Debug(ctx, "list served from store")
				return ListResult[T]{Data: slices.Clone(items), Metadata: es.Page, FromCache: true}
			}
		}
	}

	op := models.OpRead
	r.dispatch(op, store.PhaseRequest, "")
	defer r.dispatch(op, store.PhaseComplete, "")

	failed := func(msg string) ListResult[T] {
		return ListResult[T]{Data: []T{}, Detail: r.fail(op, msg)}
	}

	tpl, err := r.endpoint(op)
	if err != nil {
		return failed(r.transportFailure(ctx, op, err))
	}
	env, err := r.deps.Fetcher.Fetch(ctx, tpl, api.Options{Method: http.MethodGet, Metadata: &md})
	if err != nil {
		return failed(r.transportFailure(ctx, op, err))
	}
	if msg := env.Err(); msg != "" {
		return failed(msg)
	}
	items := []T{}
	if err := env.Decode(&items); err != nil {
		return failed(r.transportFailure(ctx, op, err))
	}
	if items == nil {
		items = []T{}
	}

	r.deps.Store.Dispatch(store.Lifecycle{
		Kind:     r.desc.Kind,
		Op:       op,
		Phase:    store.PhaseSuccess,
		Items:    items,
		Metadata: &md,
		Page:     env.Metadata,
	})
	return ListResult[T]{Data: slices.Clone(items), Metadata: env.Metadata}
}

// Get returns one record. The store's list is searched first; a cached
// record only counts when it carries its extras if those were asked for,
// and a soft-deleted one only when IsIncludeDeleted is set.
// A fetched record is returned to the caller and not stored, and no
// lifecycle actions are dispatched.
func (r *Resource[T]) Get(ctx context.Context, id models.ID, opts GetOptions) OneResult[T] {
	for _, it := range store.Items[T](r.deps.Store, r.desc.Kind) {
		if it.GetID() != id {
			continue
		}
		if (!opts.IsIncludeExtra || it.HasExtra()) && (!it.SoftDeleted() || opts.IsIncludeDeleted) {
			return OneResult[T]{Data: it, FromCache: true}
		}
	}

	op := models.OpRead
	tpl, err := r.endpoint(op)
	if err != nil {
		return OneResult[T]{Detail: r.transportFailure(ctx, op, err)}
	}
	env, err := r.deps.Fetcher.Fetch(ctx, itemEndpoint(tpl), api.Options{
		Method:     http.MethodGet,
		PathParams: idParams(id),
		QueryParams: map[string]string{
			common.QueryIncludeExtra:   strconv.FormatBool(opts.IsIncludeExtra),
			common.QueryIncludeDeleted: strconv.FormatBool(opts.IsIncludeDeleted),
		},
	})
	if err != nil {
		return OneResult[T]{Detail: r.transportFailure(ctx, op, err)}
	}
	if msg := env.Err(); msg != "" {
		return OneResult[T]{Detail: msg}
	}
	var rec T
	if err := env.Decode(&rec); err != nil {
		return OneResult[T]{Detail: r.transportFailure(ctx, op, err)}
	}
	return OneResult[T]{Data: rec}
}

// Select stores record as the kind's selected record.
func (r *Resource[T]) Select(record T) {
	r.deps.Store.Dispatch(store.SetSelected{Kind: r.desc.Kind, Record: record})
}

// Unmount resets the selected record.
func (r *Resource[T]) Unmount() {
	r.deps.Store.Dispatch(store.Unmount{Kind: r.desc.Kind})
}
