package apitest

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/shared"
)

// Prefix is the path prefix served by the fake backend.
const Prefix = "/api/v1/"

// LoginPath is the fake login endpoint relative to the server URL.
const LoginPath = Prefix + "auth/login"

type record = map[string]any

type collection struct {
	nextID  int64
	records map[int64]record
}

// Account is a user able to log in through LoginPath.
type Account struct {
	Password string
	User     record
}

// Server is the fake backend. All methods are safe for concurrent use.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	secret      []byte
	tokenTTL    time.Duration
	requireAuth bool
	colls       map[string]*collection
	accounts    map[string]Account
	requests    map[string]int
	total       int
	failNext    string
	now         func() time.Time
}

// NewServer starts a fake backend. Close it when done.
func NewServer() *Server {
	secret, err := shared.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}
	s := &Server{
		secret:   []byte(secret),
		tokenTTL: time.Hour,
		colls:    make(map[string]*collection),
		accounts: make(map[string]Account),
		requests: make(map[string]int),
		now:      time.Now,
	}
	s.srv = httptest.NewServer(s)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// RequireAuth makes every entity route demand a valid bearer token.
func (s *Server) RequireAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireAuth = true
}

// SetTokenTTL changes the lifetime of tokens issued from now on.
func (s *Server) SetTokenTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = d
}

// AddAccount registers a login. user is the profile returned on login.
func (s *Server) AddAccount(username, password string, user any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = Account{Password: password, User: toRecord(user)}
}

// Token issues a valid token for subject.
func (s *Server) Token(subject string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := GenerateToken(subject, subject, s.secret, s.tokenTTL)
	if err != nil {
		panic(err)
	}
	return tok
}

// Seed stores records directly in coll (bypassing the API) and returns
// their assigned ids.
func (s *Server) Seed(coll string, records ...any) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, s.insert(coll, toRecord(r), ""))
	}
	return ids
}

// Record returns a copy of the stored record.
func (s *Server) Record(coll string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collection(coll).records[id]
	if !ok {
		return nil, false
	}
	return copyRecord(rec), true
}

// FailNext makes the next entity request answer 200 with detail.error msg.
func (s *Server) FailNext(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = msg
}

// Requests reports how many times method hit path.
func (s *Server) Requests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// TotalRequests counts every request received.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ResetCounts zeroes the request counters.
func (s *Server) ResetCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = make(map[string]int)
	s.total = 0
}

func (s *Server) collection(name string) *collection {
	c, ok := s.colls[name]
	if !ok {
		c = &collection{records: make(map[int64]record)}
		s.colls[name] = c
	}
	return c
}

func (s *Server) insert(coll string, rec record, author string) int64 {
	c := s.collection(coll)
	c.nextID++
	id := c.nextID

	delete(rec, "id")
	rec["id"] = id
	if _, ok := rec["isDeleted"]; !ok {
		rec["isDeleted"] = false
	}
	rec["created"] = s.now().UTC().Format(time.RFC3339)
	if author != "" {
		rec["createdBy"] = author
	}
	c.records[id] = rec
	return id
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests[r.Method+" "+r.URL.Path]++
	s.total++

	if !strings.HasPrefix(r.URL.Path, Prefix) {
		writeJSON(w, http.StatusNotFound, record{"detail": "Not Found"})
		return
	}

	if r.URL.Path == LoginPath {
		s.login(w, r)
		return
	}

	var subject string
	if s.requireAuth {
		token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
		sub, err := SubjectFromToken(token, s.secret)
		if !ok || err != nil {
			writeJSON(w, http.StatusUnauthorized, record{"detail": "Not authenticated"})
			return
		}
		subject = sub
	}

	if s.failNext != "" {
		msg := s.failNext
		s.failNext = ""
		writeJSON(w, http.StatusOK, record{"data": []any{}, "detail": record{"error": msg}})
		return
	}

	segs := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, Prefix), "/"), "/")
	coll := segs[0]
	q := r.URL.Query()

	switch len(segs) {
	case 1:
		switch r.Method {
		case http.MethodGet:
			s.list(w, coll, q)
		case http.MethodPost:
			s.create(w, r, coll, subject)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, record{"detail": "Method Not Allowed"})
		}
	case 2:
		id, err := strconv.ParseInt(segs[1], 10, 64)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, record{"detail": "invalid id"})
			return
		}
		rec, ok := s.collection(coll).records[id]
		if !ok || (isDeleted(rec) && q.Get(common.QueryIncludeDeleted) != "true" && r.Method == http.MethodGet) {
			writeJSON(w, http.StatusNotFound, record{"detail": fmt.Sprintf("%s %d not found", coll, id)})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, record{"data": s.present(coll, rec, q.Get(common.QueryIncludeExtra) == "true")})
		case http.MethodPut:
			s.update(w, r, coll, rec, subject)
		case http.MethodDelete:
			if q.Get(common.QueryHardDelete) == "true" {
				delete(s.collection(coll).records, id)
			} else {
				rec["isDeleted"] = true
				rec["modified"] = s.now().UTC().Format(time.RFC3339)
			}
			writeJSON(w, http.StatusOK, record{"data": record{"id": id}})
		default:
			writeJSON(w, http.StatusMethodNotAllowed, record{"detail": "Method Not Allowed"})
		}
	default:
		writeJSON(w, http.StatusNotFound, record{"detail": "Not Found"})
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, record{"detail": "Method Not Allowed"})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, record{"detail": "invalid form"})
		return
	}
	username := r.PostForm.Get("username")
	acc, ok := s.accounts[username]
	if !ok || acc.Password != r.PostForm.Get("password") {
		writeJSON(w, http.StatusBadRequest, record{"detail": "Incorrect username or password"})
		return
	}
	name, _ := acc.User["fullName"].(string)
	tok, err := GenerateToken(username, name, s.secret, s.tokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, record{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, record{"data": record{"token": tok, "user": acc.User}})
}

// reserved query keys never treated as filters
var reserved = map[string]bool{
	common.QueryIncludeDeleted: true,
	common.QueryIncludeExtra:   true,
	common.QueryPage:           true,
	common.QueryPerPage:        true,
	common.QuerySortBy:         true,
	common.QuerySortDirection:  true,
}

func (s *Server) list(w http.ResponseWriter, coll string, q map[string][]string) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	includeDeleted := get(common.QueryIncludeDeleted) == "true"
	includeExtra := get(common.QueryIncludeExtra) == "true"

	var out []record
	for _, rec := range s.collection(coll).records {
		if isDeleted(rec) && !includeDeleted {
			continue
		}
		if !matchFilters(rec, q) {
			continue
		}
		out = append(out, rec)
	}

	sortBy := get(common.QuerySortBy)
	desc := get(common.QuerySortDirection) == "desc"
	sort.Slice(out, func(i, j int) bool {
		if sortBy != "" {
			a, b := fmt.Sprint(out[i][sortBy]), fmt.Sprint(out[j][sortBy])
			if a != b {
				return (a < b) != desc
			}
		}
		return (toInt64(out[i]["id"]) < toInt64(out[j]["id"])) != desc
	})

	resp := record{}
	page, _ := strconv.Atoi(get(common.QueryPage))
	perPage, _ := strconv.Atoi(get(common.QueryPerPage))
	if page > 0 && perPage > 0 {
		total := len(out)
		start := min((page-1)*perPage, total)
		end := min(start+perPage, total)
		out = out[start:end]
		resp["metadata"] = record{
			"page":       page,
			"perPage":    perPage,
			"totalItems": total,
			"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
		}
	}

	data := make([]record, 0, len(out))
	for _, rec := range out {
		data = append(data, s.present(coll, rec, includeExtra))
	}
	resp["data"] = data
	writeJSON(w, http.StatusOK, resp)
}

func matchFilters(rec record, q map[string][]string) bool {
	for k, v := range q {
		if reserved[k] || len(v) == 0 {
			continue
		}
		if fmt.Sprint(rec[k]) != v[0] {
			return false
		}
	}
	return true
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, coll, subject string) {
	var rec record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil || rec == nil {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": "invalid body"})
		return
	}
	if _, ok := rec["id"]; ok {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": "id must not be sent on create"})
		return
	}
	id := s.insert(coll, rec, subject)
	writeJSON(w, http.StatusCreated, record{"data": s.present(coll, s.collection(coll).records[id], false)})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, coll string, rec record, subject string) {
	var patch record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, record{"detail": "invalid body"})
		return
	}
	for k, v := range patch {
		if k == "id" || k == "created" || k == "createdBy" {
			continue
		}
		rec[k] = v
	}
	if r.URL.Query().Get(common.QueryRestore) == "true" {
		rec["isDeleted"] = false
	}
	rec["modified"] = s.now().UTC().Format(time.RFC3339)
	if subject != "" {
		rec["modifiedBy"] = subject
	}
	writeJSON(w, http.StatusOK, record{"data": s.present(coll, rec, false)})
}

// extra describes one nested relation filled when is_include_extra is set.
// list relations gather children of coll whose fk equals the record id;
// object relations follow the record's own fk into coll.
type extra struct {
	key  string
	list bool
	coll string
	fk   string
}

var extras = map[string][]extra{
	"clients":           {{"courtCases", true, "court_cases", "clientId"}},
	"courts":            {{"judges", true, "judges", "courtId"}},
	"judges":            {{"court", false, "courts", "courtId"}},
	"court_cases":       {{"client", false, "clients", "clientId"}, {"caseType", false, "case_types", "caseTypeId"}},
	"hearing_calendars": {{"courtCase", false, "court_cases", "courtCaseId"}},
	"task_calendars":    {{"courtCase", false, "court_cases", "courtCaseId"}},
	"forms":             {{"courtCase", false, "court_cases", "courtCaseId"}},
	"case_collections":  {{"cashCollections", true, "cash_collections", "caseCollectionId"}},
	"cash_collections":  {{"caseCollection", false, "case_collections", "caseCollectionId"}},
	"app_users":         {{"appRoles", true, "", ""}},
	"app_roles":         {{"appPermissions", true, "", ""}},
}

// present returns the outgoing copy of rec: write-only fields dropped and,
// with includeExtra, nested relations attached.
func (s *Server) present(coll string, rec record, includeExtra bool) record {
	out := copyRecord(rec)
	delete(out, "password")
	if !includeExtra {
		return out
	}
	id := toInt64(rec["id"])
	for _, e := range extras[coll] {
		if _, ok := out[e.key]; ok {
			continue
		}
		if e.list {
			children := []record{}
			if e.coll != "" {
				for _, child := range s.collection(e.coll).records {
					if !isDeleted(child) && toInt64(child[e.fk]) == id {
						children = append(children, copyRecord(child))
					}
				}
				sort.Slice(children, func(i, j int) bool { return toInt64(children[i]["id"]) < toInt64(children[j]["id"]) })
			}
			out[e.key] = children
			continue
		}
		if parent, ok := s.collection(e.coll).records[toInt64(rec[e.fk])]; ok {
			out[e.key] = copyRecord(parent)
		} else {
			out[e.key] = record{}
		}
	}
	return out
}

func isDeleted(rec record) bool {
	b, _ := rec["isDeleted"].(bool)
	return b
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func copyRecord(rec record) record {
	out := make(record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// toRecord converts a struct (or map) into its JSON object form.
func toRecord(v any) record {
	if r, ok := v.(record); ok {
		return copyRecord(r)
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		panic(err)
	}
	if r == nil {
		r = record{}
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
