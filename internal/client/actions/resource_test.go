package actions

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/caseadmin/internal/apitest"
	"github.com/dmitrijs2005/caseadmin/internal/client/api"
	"github.com/dmitrijs2005/caseadmin/internal/client/config"
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/store"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv     *apitest.Server
	store   *store.Store
	cfg     *config.Config
	metrics *metrics.Metrics
	set     *Set
	deps    Deps
	types   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{srv: apitest.NewServer(), metrics: metrics.New()}
	t.Cleanup(f.srv.Close)

	f.store = store.New(nil, f.metrics)
	f.store.Subscribe(func(a store.Action, _ store.State) { f.types = append(f.types, a.Type()) })

	f.cfg = &config.Config{}
	f.cfg.LoadDefaults()
	f.cfg.BaseURL = f.srv.URL()

	client := api.NewClient(api.ClientConfig{BaseURL: f.srv.URL(), RateLimit: 1000, RateBurst: 100, Metrics: f.metrics})
	f.deps = Deps{Fetcher: client, Store: f.store, Endpoints: f.cfg, Metrics: f.metrics}
	f.set = NewSet(f.deps)
	return f
}

// reset forgets recorded actions and request counts.
func (f *fixture) reset() {
	f.types = nil
	f.srv.ResetCounts()
}

func janeDoe() models.Client {
	return models.Client{Name: "Jane Doe", Email: "jane@x.com", PhoneNumber: "5551234567"}
}

const date = "2024-05-01T00:00:00Z"

// validFields holds one valid record per kind.
var validFields = map[models.Kind]map[string]any{
	models.KindClient:           {"name": "Jane Doe", "email": "jane@x.com", "phoneNumber": "5551234567"},
	models.KindCourt:            {"name": "Downtown"},
	models.KindJudge:            {"name": "Judy", "courtId": 1},
	models.KindCourtCase:        {"clientId": 1, "caseTypeId": 1},
	models.KindHearingCalendar:  {"hearingDate": date, "hearingTypeId": 1, "courtCaseId": 1},
	models.KindTaskCalendar:     {"taskDate": date, "taskTypeId": 1, "courtCaseId": 1},
	models.KindForm:             {"formTypeId": 1, "courtCaseId": 1},
	models.KindCaseCollection:   {"quoteAmount": 1500, "courtCaseId": 1},
	models.KindCashCollection:   {"collectedAmount": 50, "collectionDate": date, "collectionMethodId": 1, "caseCollectionId": 1},
	models.KindAppUser:          {"email": "admin@x.com", "fullName": "Admin", "password": "password123"},
	models.KindAppRole:          {"name": "clerk"},
	models.KindAppPermission:    {"name": "CLIENTS_READ"},
	models.KindComponentStatus:  {"componentName": "CLIENTS", "statusName": "ACTIVE", "isActive": true},
	models.KindCaseType:         {"name": "Asylum"},
	models.KindFilingType:       {"name": "I-589"},
	models.KindHearingType:      {"name": "Master"},
	models.KindTaskType:         {"name": "Call"},
	models.KindCollectionMethod: {"name": "Cash"},
}

func countSuffix(types []string, suffix string) int {
	n := 0
	for _, t := range types {
		if strings.HasSuffix(t, suffix) {
			n++
		}
	}
	return n
}

func TestExampleScenario_AddClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.set.Clients.Add(ctx, models.NewForm(janeDoe()))
	require.True(t, res.Success, res.Detail)
	assert.Equal(t, "Client Added Successfully", res.Detail)

	assert.Equal(t, []string{"CLIENT_CREATE_REQUEST", "CLIENT_CREATE_SUCCESS", "CLIENT_CREATE_COMPLETE"}, f.types)
	assert.Nil(t, store.Items[models.Client](f.store, models.KindClient), "list invalidated")
	assert.Equal(t, store.Alert{Success: "Client Added Successfully"}, f.store.Snapshot().Alert)

	f.reset()
	list := f.set.Clients.List(ctx, ListOptions{})
	require.Empty(t, list.Detail)
	assert.False(t, list.FromCache)
	assert.Equal(t, 1, f.srv.Requests(http.MethodGet, apitest.Prefix+"clients"))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Jane Doe", list.Data[0].Name)
	assert.Positive(t, int64(list.Data[0].ID))
	assert.Equal(t, []string{"CLIENT_READ_REQUEST", "CLIENT_READ_SUCCESS", "CLIENT_READ_COMPLETE"}, f.types)
	assert.Len(t, store.Items[models.Client](f.store, models.KindClient), 1)
}

// A second read with unchanged metadata and a non-empty list stays off the
// network and dispatches nothing.
func TestProperty_CacheHit(t *testing.T) {
	for _, kind := range models.AllKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			r, ok := f.set.For(kind)
			require.True(t, ok)

			require.True(t, r.AddFields(ctx, validFields[kind]).Success)
			md := models.RequestMetadata{Page: 1, PerPage: 10, SortBy: "id"}
			first := r.ListEntities(ctx, ListOptions{Metadata: md})
			require.Empty(t, first.Detail)
			require.Len(t, first.Data, 1)

			f.reset()
			second := r.ListEntities(ctx, ListOptions{Metadata: md})
			assert.True(t, second.FromCache)
			assert.Len(t, second.Data, 1)
			assert.Zero(t, f.srv.TotalRequests())
			assert.Empty(t, f.types)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits.WithLabelValues(kind.String())))

			changed := md
			changed.Page = 2
			third := r.ListEntities(ctx, ListOptions{Metadata: changed})
			assert.False(t, third.FromCache)
			assert.Equal(t, 1, f.srv.TotalRequests())

			f.reset()
			forced := r.ListEntities(ctx, ListOptions{Metadata: changed, Force: true})
			assert.False(t, forced.FromCache)
			assert.Equal(t, 1, f.srv.TotalRequests())
		})
	}
}

func TestCacheMissOnEmptyList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.set.Courts.List(ctx, ListOptions{})
	f.set.Courts.List(ctx, ListOptions{})
	assert.Equal(t, 2, f.srv.Requests(http.MethodGet, apitest.Prefix+"courts"), "an empty list is never a cache hit")
}

func TestCacheKeyTreatsNilAndEmptyFiltersAlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.srv.Seed("courts", map[string]any{"name": "A"})

	f.set.Courts.List(ctx, ListOptions{Metadata: models.RequestMetadata{Filters: map[string]string{}}})
	res := f.set.Courts.List(ctx, ListOptions{})
	assert.True(t, res.FromCache)
}

// Any mutation success clears the list and resets the selected record.
func TestProperty_FullInvalidate(t *testing.T) {
	for _, kind := range models.AllKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			r, _ := f.set.For(kind)

			require.True(t, r.AddFields(ctx, validFields[kind]).Success)
			for _, op := range []func(id models.ID) Result{
				func(models.ID) Result { return r.AddFields(ctx, validFields[kind]) },
				func(id models.ID) Result { return r.EditFields(ctx, id, map[string]any{"comments": "edited"}, EditOptions{}) },
				func(id models.ID) Result { return r.DeleteID(ctx, id, false) },
			} {
				list := r.ListEntities(ctx, ListOptions{Force: true})
				require.NotEmpty(t, list.Data)
				id := list.Data[0].GetID()
				require.True(t, r.SelectID(ctx, id))
				require.NotNil(t, f.store.Entity(kind).Selected)

				res := op(id)
				require.True(t, res.Success, res.Detail)

				es := f.store.Entity(kind)
				assert.Nil(t, es.Items)
				assert.Nil(t, es.Selected)
				assert.True(t, es.IsCloseModal)
			}
		})
	}
}

// A failed validation never reaches the network.
func TestProperty_FailFastValidation(t *testing.T) {
	for _, kind := range models.AllKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			r, _ := f.set.For(kind)

			res := r.AddFields(ctx, map[string]any{})
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.FieldErrors)
			assert.NotEmpty(t, res.Detail)
			assert.Zero(t, f.srv.TotalRequests())

			prefix := kind.String() + "_CREATE_"
			assert.Equal(t, []string{prefix + "REQUEST", prefix + "FAILURE", prefix + "COMPLETE"}, f.types)
			assert.Equal(t, res.Detail, f.store.Snapshot().Alert.Error)
		})
	}

	f := newFixture(t)
	ctx := context.Background()
	invalid := janeDoe()
	invalid.ID = 3
	invalid.Email = "nope"
	res := f.set.Clients.Edit(ctx, models.NewForm(invalid), EditOptions{})
	assert.Contains(t, res.FieldErrors, "email")
	assert.Zero(t, f.srv.TotalRequests())
}

// Every REQUEST is closed by exactly one COMPLETE, whatever the branch.
func TestProperty_Bracketing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.set.Clients.Add(ctx, models.NewForm(janeDoe()))
	f.set.Clients.Add(ctx, models.NewForm(models.Client{}))
	f.srv.FailNext("Email already registered")
	semantic := f.set.Clients.Add(ctx, models.NewForm(janeDoe()))
	f.set.Clients.List(ctx, ListOptions{})
	f.set.Clients.List(ctx, ListOptions{}) // cache hit
	f.set.Clients.Delete(ctx, models.NewForm(models.Client{}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	gone := f.set.Clients.List(cancelled, ListOptions{Force: true}) // transport failure

	assert.Equal(t, "Email already registered", semantic.Detail)
	assert.Equal(t, common.MsgSomethingWentWrong, gone.Detail)
	assert.NotNil(t, gone.Data)

	requests := countSuffix(f.types, "_REQUEST")
	assert.Equal(t, 6, requests)
	assert.Equal(t, requests, countSuffix(f.types, "_COMPLETE"))
	assert.Equal(t, requests, countSuffix(f.types, "_SUCCESS")+countSuffix(f.types, "_FAILURE"))

	open := 0
	for _, typ := range f.types {
		switch {
		case strings.HasSuffix(typ, "_REQUEST"):
			open++
			assert.Equal(t, 1, open, "lifecycles run one at a time here")
		case strings.HasSuffix(typ, "_COMPLETE"):
			open--
		}
	}
	assert.Zero(t, open)
	assert.Zero(t, f.store.Snapshot().InFlight)
}

func TestProperty_AddThenListRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.set.Judges.Add(ctx, models.NewForm(models.Judge{Name: "Judy", CourtID: 4})).Success)

	list := f.set.Judges.List(ctx, ListOptions{Force: true})
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Judy", list.Data[0].Name)
	assert.EqualValues(t, 4, list.Data[0].CourtID)
	assert.True(t, list.Data[0].ID.Set())
}

func TestProperty_SoftDeleteRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.set.Clients.Add(ctx, models.NewForm(janeDoe())).Success)
	jane := f.set.Clients.List(ctx, ListOptions{}).Data[0]

	require.True(t, f.set.Clients.Delete(ctx, models.NewForm(jane)).Success)
	rec, ok := f.srv.Record("clients", int64(jane.ID))
	require.True(t, ok)
	assert.Equal(t, true, rec["isDeleted"])

	assert.Empty(t, f.set.Clients.List(ctx, ListOptions{}).Data)
	withDeleted := f.set.Clients.List(ctx, ListOptions{Metadata: models.RequestMetadata{IsIncludeDeleted: true}})
	require.Len(t, withDeleted.Data, 1)
	assert.True(t, withDeleted.Data[0].IsDeleted)

	require.True(t, f.set.Clients.Edit(ctx, models.NewForm(withDeleted.Data[0]), EditOptions{IsRestore: true}).Success)
	restored := f.set.Clients.List(ctx, ListOptions{})
	require.Len(t, restored.Data, 1)
	assert.False(t, restored.Data[0].IsDeleted)
}

func TestEdit_HardDeleteOverridesRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.set.Courts.Add(ctx, models.NewForm(models.Court{Name: "Old"})).Success)
	court := f.set.Courts.List(ctx, ListOptions{}).Data[0]
	f.reset()

	form := models.NewForm(court)
	form.IsHardDelete = true
	res := f.set.Courts.Edit(ctx, form, EditOptions{IsRestore: true})
	require.True(t, res.Success)
	assert.Equal(t, "Court Deleted Successfully", res.Detail)

	assert.Equal(t, 1, f.srv.Requests(http.MethodDelete, apitest.Prefix+"courts/1"))
	assert.Zero(t, f.srv.Requests(http.MethodPut, apitest.Prefix+"courts/1"))
	_, ok := f.srv.Record("courts", 1)
	assert.False(t, ok)
	assert.Equal(t, []string{"COURT_DELETE_REQUEST", "COURT_DELETE_SUCCESS", "COURT_DELETE_COMPLETE"}, f.types)
}

func TestMutation_InvalidatesParentSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.set.Courts.Select(models.Court{Name: "Downtown"})
	require.True(t, f.set.Judges.Add(ctx, models.NewForm(models.Judge{Name: "Judy", CourtID: 1})).Success)

	_, ok := store.Selected[models.Court](f.store, models.KindCourt)
	assert.False(t, ok)
}

func TestSelectEntityAndUnmount(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.set.Clients.SelectEntity(models.Court{Name: "Downtown"}), "wrong kind is ignored")
	assert.Empty(t, f.types)

	require.True(t, f.set.Clients.SelectEntity(janeDoe()))
	sel, ok := store.Selected[models.Client](f.store, models.KindClient)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", sel.Name)

	f.set.Clients.Unmount()
	_, ok = store.Selected[models.Client](f.store, models.KindClient)
	assert.False(t, ok)
	assert.Equal(t, []string{"SET_SELECTED_CLIENT", "CLIENT_UNMOUNT"}, f.types)
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.srv.Seed("clients", janeDoe())

	f.set.Clients.List(ctx, ListOptions{})
	f.reset()

	hit := f.set.Clients.Get(ctx, 1, GetOptions{})
	assert.True(t, hit.FromCache)
	assert.Equal(t, "Jane Doe", hit.Data.Name)
	assert.Zero(t, f.srv.TotalRequests())

	extra := f.set.Clients.Get(ctx, 1, GetOptions{IsIncludeExtra: true})
	require.Empty(t, extra.Detail)
	assert.False(t, extra.FromCache, "cached record lacks extras")
	assert.True(t, extra.Data.CourtCases.Loaded())
	assert.Equal(t, 1, f.srv.Requests(http.MethodGet, apitest.Prefix+"clients/1"))
	assert.Empty(t, f.types, "single reads dispatch nothing")
	assert.Len(t, store.Items[models.Client](f.store, models.KindClient), 1)

	missing := f.set.Clients.Get(ctx, 99, GetOptions{})
	assert.Equal(t, "clients 99 not found", missing.Detail)
}

func TestGet_CachedSoftDeletedNeedsIncludeDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.set.Clients.Add(ctx, models.NewForm(janeDoe())).Success)
	jane := f.set.Clients.List(ctx, ListOptions{}).Data[0]
	require.True(t, f.set.Clients.Delete(ctx, models.NewForm(jane)).Success)

	withDeleted := f.set.Clients.List(ctx, ListOptions{Metadata: models.RequestMetadata{IsIncludeDeleted: true}})
	require.Len(t, withDeleted.Data, 1)
	f.reset()

	plain := f.set.Clients.Get(ctx, jane.ID, GetOptions{})
	assert.False(t, plain.FromCache)
	assert.Equal(t, "clients 1 not found", plain.Detail)
	assert.Equal(t, 1, f.srv.Requests(http.MethodGet, apitest.Prefix+"clients/1"))

	f.reset()
	deleted := f.set.Clients.Get(ctx, jane.ID, GetOptions{IsIncludeDeleted: true})
	require.Empty(t, deleted.Detail)
	assert.True(t, deleted.FromCache)
	assert.True(t, deleted.Data.IsDeleted)
	assert.Zero(t, f.srv.TotalRequests())
}

func TestList_ResultDoesNotAliasStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.srv.Seed("clients", janeDoe())

	fetched := f.set.Clients.List(ctx, ListOptions{})
	require.Len(t, fetched.Data, 1)
	fetched.Data[0].Name = "Changed"
	assert.Equal(t, "Jane Doe", store.Items[models.Client](f.store, models.KindClient)[0].Name)

	cached := f.set.Clients.List(ctx, ListOptions{})
	require.True(t, cached.FromCache)
	assert.Equal(t, "Jane Doe", cached.Data[0].Name)
	cached.Data[0].Name = "Changed"
	assert.Equal(t, "Jane Doe", store.Items[models.Client](f.store, models.KindClient)[0].Name)
}

func TestTransportAndConfigFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	delete(f.cfg.Endpoints, config.EndpointKey{Kind: models.KindCourt, Op: models.OpCreate})
	res := f.set.Courts.Add(ctx, models.NewForm(models.Court{Name: "C"}))
	assert.Equal(t, common.MsgSomethingWentWrong, res.Detail)
	assert.Zero(t, f.srv.TotalRequests())

	f.srv.Close()
	res = f.set.Clients.Add(ctx, models.NewForm(janeDoe()))
	assert.False(t, res.Success)
	assert.Equal(t, common.MsgSomethingWentWrong, res.Detail)
	assert.Equal(t, common.MsgSomethingWentWrong, f.store.Snapshot().Alert.Error)
}

func TestAddNeverSendsID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := janeDoe()
	c.ID = 42
	require.True(t, f.set.Clients.Add(ctx, models.NewForm(c)).Success)
	_, ok := f.srv.Record("clients", 1)
	assert.True(t, ok)
}
