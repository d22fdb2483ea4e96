package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, mut func(*ClientConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{BaseURL: srv.URL, RateLimit: 1000, RateBurst: 100}
	if mut != nil {
		mut(&cfg)
	}
	return NewClient(cfg)
}

func TestFetch_RequestShape(t *testing.T) {
	var got *http.Request
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"data":{"id":7}}`)
	}, func(cfg *ClientConfig) {
		cfg.Tokens = TokenFunc(func() string { return "tok" })
	})

	env, err := c.Fetch(context.Background(), "/api/v1/clients/{id}", Options{
		Method:      http.MethodPut,
		PathParams:  map[string]string{"id": "7"},
		QueryParams: map[string]string{common.QueryRestore: "true"},
		Body:        map[string]string{"name": "Jane"},
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/api/v1/clients/7", got.URL.Path)
	assert.Equal(t, "true", got.URL.Query().Get(common.QueryRestore))
	assert.Equal(t, "Bearer tok", got.Header.Get(common.AuthorizationHeaderName))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	_, err = uuid.Parse(got.Header.Get(common.RequestIDHeaderName))
	assert.NoError(t, err, "request id must be a uuid")
	assert.JSONEq(t, `{"name":"Jane"}`, gotBody)

	var rec struct{ ID int }
	require.NoError(t, env.Decode(&rec))
	assert.Equal(t, 7, rec.ID)
	assert.Empty(t, env.Err())
}

func TestFetch_NoAuthAndEmptyToken(t *testing.T) {
	var auth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get(common.AuthorizationHeaderName))
		_, _ = io.WriteString(w, `{"data":[]}`)
	}, func(cfg *ClientConfig) {
		token := "tok"
		cfg.Tokens = TokenFunc(func() string { return token })
	})

	_, err := c.Fetch(context.Background(), "/x", Options{NoAuth: true})
	require.NoError(t, err)

	c.config.Tokens = TokenFunc(func() string { return "" })
	_, err = c.Fetch(context.Background(), "/x", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"", ""}, auth)
}

func TestFetch_MetadataQuery(t *testing.T) {
	var q url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		_, _ = io.WriteString(w, `{"data":[],"metadata":{"page":2,"perPage":10,"totalItems":11,"totalPages":2}}`)
	}, nil)

	env, err := c.Fetch(context.Background(), "/api/v1/judges", Options{Metadata: &models.RequestMetadata{
		IsIncludeDeleted: true,
		Page:             2,
		PerPage:          10,
		SortBy:           "name",
		SortDirection:    models.SortDesc,
		Filters:          map[string]string{"court_id": "3"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "true", q.Get(common.QueryIncludeDeleted))
	assert.Equal(t, "false", q.Get(common.QueryIncludeExtra))
	assert.Equal(t, "2", q.Get(common.QueryPage))
	assert.Equal(t, "10", q.Get(common.QueryPerPage))
	assert.Equal(t, "name", q.Get(common.QuerySortBy))
	assert.Equal(t, "desc", q.Get(common.QuerySortDirection))
	assert.Equal(t, "3", q.Get("court_id"))

	require.NotNil(t, env.Metadata)
	assert.Equal(t, 11, env.Metadata.TotalItems)
}

func TestFetch_Non2xxBecomesDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail object", http.StatusBadRequest, `{"detail":{"error":"Name taken"}}`, "Name taken"},
		{"detail string", http.StatusNotFound, `{"detail":"Client not found"}`, "Client not found"},
		{"message", http.StatusConflict, `{"message":"conflict"}`, "conflict"},
		{"raw text", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"status text", http.StatusInternalServerError, ``, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, nil)

			env, err := c.Fetch(context.Background(), "/x", Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.Err())
		})
	}
}

func TestFetch_SemanticErrorIn2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[],"detail":{"error":"nope"}}`)
	}, nil)

	env, err := c.Fetch(context.Background(), "/x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "nope", env.Err())
}

func TestFetch_UnauthorizedHook(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Not authenticated"}`)
	}, func(cfg *ClientConfig) {
		cfg.OnUnauthorized = func(context.Context) { calls.Add(1) }
	})

	env, err := c.Fetch(context.Background(), "/x", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Not authenticated", env.Err())
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetch_BareDocumentIsWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"abc","token_type":"bearer"}`)
	}, nil)

	env, err := c.Fetch(context.Background(), "/login", Options{Method: http.MethodPost, Form: url.Values{"username": {"u"}}})
	require.NoError(t, err)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, env.Decode(&tok))
	assert.Equal(t, "abc", tok.AccessToken)
}

func TestFetch_FormBody(t *testing.T) {
	var ct, user string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		user = r.PostForm.Get("username")
		_, _ = io.WriteString(w, `{"data":null}`)
	}, nil)

	_, err := c.Fetch(context.Background(), "/login", Options{Method: http.MethodPost, Form: url.Values{"username": {"jane"}}})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", ct)
	assert.Equal(t, "jane", user)
}

func TestFetch_Errors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	}, nil)

	_, err := c.Fetch(context.Background(), "", Options{})
	assert.ErrorIs(t, err, common.ErrNoEndpoint)

	_, err = c.Fetch(context.Background(), "/clients/{id}", Options{})
	assert.ErrorIs(t, err, common.ErrMissingPathParam)

	_, err = c.Fetch(context.Background(), "/x", Options{})
	assert.ErrorContains(t, err, "decode response")

	_, err = c.Fetch(context.Background(), "/x", Options{Body: func() {}})
	assert.ErrorContains(t, err, "marshal body")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Fetch(ctx, "/x", Options{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetch_TransportErrorAndMetrics(t *testing.T) {
	m := metrics.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	c := NewClient(ClientConfig{BaseURL: srv.URL, Metrics: m, RateLimit: 1000, RateBurst: 100})

	_, err := c.Fetch(context.Background(), "/x", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "2xx")))

	srv.Close()
	_, err = c.Fetch(context.Background(), "/x", Options{Method: http.MethodDelete})
	assert.ErrorContains(t, err, "http request")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodDelete, "error")))
}

func TestBuildURL(t *testing.T) {
	c := NewClient(ClientConfig{BaseURL: "http://h:1/"})

	got, err := c.BuildURL("api/v1/clients/{id}", Options{PathParams: map[string]string{"id": "a b"}})
	require.NoError(t, err)
	assert.Equal(t, "http://h:1/api/v1/clients/a%20b", got)

	got, err = c.BuildURL("https://other/x?fixed=1", Options{QueryParams: map[string]string{"y": "2"}})
	require.NoError(t, err)
	assert.Equal(t, "https://other/x?fixed=1&y=2", got)
}

func TestExpand(t *testing.T) {
	got, err := Expand("/courts/{court_id}/judges/{id}", map[string]string{"court_id": "3", "id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/courts/3/judges/9", got)

	got, err = Expand("/plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "/plain", got)

	_, err = Expand("/x/{id}", map[string]string{"id": ""})
	assert.ErrorIs(t, err, common.ErrMissingPathParam)
}
