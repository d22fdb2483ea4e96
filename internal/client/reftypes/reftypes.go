// Package reftypes runs the CRUD lifecycle of the reference tables through
// one registry keyed by RefType instead of a resource per table.
package reftypes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// RefType names one reference table.
type RefType uint8

const (
	CaseType RefType = iota + 1
	FilingType
	HearingType
	TaskType
	CollectionMethod
	ComponentStatus
)

type FieldKind uint8

const (
	FieldText FieldKind = iota
	FieldBool
)

// Field is one editable column of a reference table.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	MaxLen   int
}

var (
	generic = []Field{
		{Key: "name", Label: "Name", Required: true, MaxLen: 255},
		{Key: "description", Label: "Description", MaxLen: 1000},
	}
	componentStatus = []Field{
		{Key: "componentName", Label: "Component Name", Required: true, MaxLen: 255},
		{Key: "statusName", Label: "Status Name", Required: true, MaxLen: 255},
		{Key: "isActive", Label: "Active", Kind: FieldBool},
	}
)

type info struct {
	name   string
	kind   models.Kind
	fields []Field
}

var table = map[RefType]info{
	CaseType:         {"case_type", models.KindCaseType, generic},
	FilingType:       {"filing_type", models.KindFilingType, generic},
	HearingType:      {"hearing_type", models.KindHearingType, generic},
	TaskType:         {"task_type", models.KindTaskType, generic},
	CollectionMethod: {"collection_method", models.KindCollectionMethod, generic},
	ComponentStatus:  {"component_status", models.KindComponentStatus, componentStatus},
}

func All() []RefType {
	return []RefType{CaseType, FilingType, HearingType, TaskType, CollectionMethod, ComponentStatus}
}

func (rt RefType) String() string {
	if i, ok := table[rt]; ok {
		return i.name
	}
	return fmt.Sprintf("RefType(%d)", uint8(rt))
}

func (rt RefType) Kind() models.Kind { return table[rt].kind }

func (rt RefType) Label() string { return table[rt].kind.Label() }

// Fields returns the editable columns of rt.
func Fields(rt RefType) []Field { return table[rt].fields }

// Parse accepts "case_type", "CASE_TYPE", "case-type" or "casetype".
func Parse(s string) (RefType, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for _, rt := range All() {
		if strings.ReplaceAll(rt.String(), "_", "") == norm {
			return rt, nil
		}
	}
	return 0, fmt.Errorf("unknown reference type %q", s)
}

// Value renders the column key of rec.
func Value(rec models.RefRecord, key string) string {
	switch key {
	case "id":
		return strconv.FormatInt(int64(rec.ID), 10)
	case "name":
		return rec.Name
	case "description":
		return rec.Description
	case "componentName":
		return rec.ComponentName
	case "statusName":
		return rec.StatusName
	case "isActive":
		return strconv.FormatBool(rec.IsActive)
	case "comments":
		return rec.Comments
	}
	return ""
}

// Apply parses value into the column key of rec.
func Apply(rec *models.RefRecord, f Field, value string) error {
	value = strings.TrimSpace(value)
	if f.MaxLen > 0 && len(value) > f.MaxLen {
		return fmt.Errorf("%s must be at most %d characters", f.Label, f.MaxLen)
	}
	switch f.Key {
	case "name":
		rec.Name = value
	case "description":
		rec.Description = value
	case "componentName":
		rec.ComponentName = value
	case "statusName":
		rec.StatusName = value
	case "isActive":
		if value == "" {
			rec.IsActive = false
			return nil
		}
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Label, err)
		}
		rec.IsActive = b
	default:
		return fmt.Errorf("unknown field %q", f.Key)
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}
