// Package models defines the case-management entities exchanged with the
// backend, together with the form and request descriptors that travel
// alongside them.
package models

import (
	"fmt"
	"strings"
)

// Kind identifies one entity type with its own CRUD lifecycle.
type Kind uint8

const (
	KindClient Kind = iota + 1
	KindCourt
	KindJudge
	KindCourtCase
	KindHearingCalendar
	KindTaskCalendar
	KindForm
	KindCaseCollection
	KindCashCollection
	KindAppUser
	KindAppRole
	KindAppPermission
	KindComponentStatus
	KindCaseType
	KindFilingType
	KindHearingType
	KindTaskType
	KindCollectionMethod
)

type kindInfo struct {
	tag   string // CLIENT, HEARING_CALENDAR
	label string // Client, Hearing Calendar
	path  string // clients, hearing_calendars
}

var kinds = map[Kind]kindInfo{
	KindClient:           {"CLIENT", "Client", "clients"},
	KindCourt:            {"COURT", "Court", "courts"},
	KindJudge:            {"JUDGE", "Judge", "judges"},
	KindCourtCase:        {"COURT_CASE", "Court Case", "court_cases"},
	KindHearingCalendar:  {"HEARING_CALENDAR", "Hearing Calendar", "hearing_calendars"},
	KindTaskCalendar:     {"TASK_CALENDAR", "Task Calendar", "task_calendars"},
	KindForm:             {"FORM", "Form", "forms"},
	KindCaseCollection:   {"CASE_COLLECTION", "Case Collection", "case_collections"},
	KindCashCollection:   {"CASH_COLLECTION", "Cash Collection", "cash_collections"},
	KindAppUser:          {"APP_USER", "User", "app_users"},
	KindAppRole:          {"APP_ROLE", "Role", "app_roles"},
	KindAppPermission:    {"APP_PERMISSION", "Permission", "app_permissions"},
	KindComponentStatus:  {"COMPONENT_STATUS", "Component Status", "component_statuses"},
	KindCaseType:         {"CASE_TYPE", "Case Type", "case_types"},
	KindFilingType:       {"FILING_TYPE", "Filing Type", "filing_types"},
	KindHearingType:      {"HEARING_TYPE", "Hearing Type", "hearing_types"},
	KindTaskType:         {"TASK_TYPE", "Task Type", "task_types"},
	KindCollectionMethod: {"COLLECTION_METHOD", "Collection Method", "collection_methods"},
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := KindClient; k <= KindCollectionMethod; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the upper-snake tag used in action type names.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.tag
	}
	return fmt.Sprintf("KIND(%d)", uint8(k))
}

// Label returns the human-readable entity name.
func (k Kind) Label() string {
	return kinds[k].label
}

// Path returns the default collection path segment for the kind.
func (k Kind) Path() string {
	return kinds[k].path
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// ParseKind accepts the tag, the path segment, or a dashed/compact spelling
// ("hearing-calendar", "hearingcalendar").
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for k, info := range kinds {
		tag := strings.ReplaceAll(strings.ToLower(info.tag), "_", "")
		path := strings.ReplaceAll(info.path, "_", "")
		if norm == tag || norm == path {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity %q", s)
}

// Op is one of the four CRUD operations.
type Op uint8

const (
	OpCreate Op = iota + 1
	OpRead
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "CREATE"
	case OpRead:
		return "READ"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	}
	return fmt.Sprintf("OP(%d)", uint8(o))
}

// EndpointName is the environment-variable spelling of the op
// (CREATE, RETRIEVE, UPDATE, DELETE).
func (o Op) EndpointName() string {
	if o == OpRead {
		return "RETRIEVE"
	}
	return o.String()
}

// Verb is the past-tense verb used in success messages.
func (o Op) Verb() string {
	switch o {
	case OpCreate:
		return "Added"
	case OpUpdate:
		return "Updated"
	case OpDelete:
		return "Deleted"
	}
	return "Retrieved"
}

// IsMutation reports whether o changes backend state.
func (o Op) IsMutation() bool {
	return o == OpCreate || o == OpUpdate || o == OpDelete
}

// AllOps lists the CRUD operations in order.
func AllOps() []Op {
	return []Op{OpCreate, OpRead, OpUpdate, OpDelete}
}
