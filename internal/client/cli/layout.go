package cli

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/reftypes"
	"github.com/dmitrijs2005/caseadmin/internal/client/view"
)

type fieldType uint8

const (
	text fieldType = iota
	digits
	integer
	decimal
	date
	boolean
	secret
)

// column is one entity attribute as shown in tables and forms.
type column struct {
	name     string
	label    string
	typ      fieldType
	required bool
	max      int
	// listed columns appear in the list table
	listed bool
}

var comments = column{name: "comments", label: "Comments", max: models.MaxCommentsLength}

var layouts = map[models.Kind][]column{
	models.KindClient: {
		{name: "name", label: "Name", required: true, max: 255, listed: true},
		{name: "aka", label: "AKA", max: 255},
		{name: "aNumber", label: "A Number", typ: digits, max: 9, listed: true},
		{name: "email", label: "Email", required: true, max: 255, listed: true},
		{name: "phoneNumber", label: "Phone Number", typ: digits, required: true, max: 10, listed: true},
		{name: "address", label: "Address", max: 255},
		{name: "city", label: "City", max: 255, listed: true},
		{name: "state", label: "State", max: 2},
		{name: "zipCode", label: "Zip Code", typ: digits, max: 5},
		{name: "judgeId", label: "Judge", typ: integer},
		comments,
	},
	models.KindCourt: {
		{name: "name", label: "Name", required: true, max: 255, listed: true},
		{name: "dhsAddress", label: "DHS Address", max: 255},
		{name: "address", label: "Address", max: 255, listed: true},
		{name: "phoneNumber", label: "Phone Number", typ: digits, max: 10, listed: true},
		comments,
	},
	models.KindJudge: {
		{name: "name", label: "Name", required: true, max: 255, listed: true},
		{name: "webex", label: "Webex", max: 255},
		{name: "courtId", label: "Court", typ: integer, required: true, listed: true},
		comments,
	},
	models.KindCourtCase: {
		{name: "clientId", label: "Client", typ: integer, required: true, listed: true},
		{name: "caseTypeId", label: "Case Type", typ: integer, required: true, listed: true},
		comments,
	},
	models.KindHearingCalendar: {
		{name: "hearingDate", label: "Hearing Date", typ: date, required: true, listed: true},
		{name: "hearingTypeId", label: "Hearing Type", typ: integer, required: true, listed: true},
		{name: "courtCaseId", label: "Court Case", typ: integer, required: true, listed: true},
		{name: "judgeId", label: "Judge", typ: integer, listed: true},
		comments,
	},
	models.KindTaskCalendar: {
		{name: "taskDate", label: "Task Date", typ: date, required: true, listed: true},
		{name: "taskTypeId", label: "Task Type", typ: integer, required: true, listed: true},
		{name: "courtCaseId", label: "Court Case", typ: integer, required: true, listed: true},
		{name: "hearingCalendarId", label: "Hearing Calendar", typ: integer},
		comments,
	},
	models.KindForm: {
		{name: "formTypeId", label: "Form Type", typ: integer, required: true, listed: true},
		{name: "courtCaseId", label: "Court Case", typ: integer, required: true, listed: true},
		{name: "taskCalendarId", label: "Task Calendar", typ: integer},
		{name: "submitDate", label: "Submit Date", typ: date, listed: true},
		{name: "receiptDate", label: "Receipt Date", typ: date},
		{name: "receiptNumber", label: "Receipt Number", max: 255, listed: true},
		{name: "priorityDate", label: "Priority Date", typ: date},
		{name: "rfeDate", label: "RFE Date", typ: date},
		{name: "rfeSubmitDate", label: "RFE Submit Date", typ: date},
		{name: "decisionDate", label: "Decision Date", typ: date, listed: true},
		comments,
	},
	models.KindCaseCollection: {
		{name: "quoteAmount", label: "Quote Amount", typ: decimal, required: true, listed: true},
		{name: "courtCaseId", label: "Court Case", typ: integer, required: true, listed: true},
		comments,
	},
	models.KindCashCollection: {
		{name: "collectedAmount", label: "Collected Amount", typ: decimal, required: true, listed: true},
		{name: "waivedAmount", label: "Waived Amount", typ: decimal, listed: true},
		{name: "memo", label: "Memo", max: 255},
		{name: "collectionDate", label: "Collection Date", typ: date, required: true, listed: true},
		{name: "collectionMethodId", label: "Collection Method", typ: integer, required: true, listed: true},
		{name: "caseCollectionId", label: "Case Collection", typ: integer, required: true, listed: true},
		comments,
	},
	models.KindAppUser: {
		{name: "email", label: "Email", required: true, max: 255, listed: true},
		{name: "fullName", label: "Full Name", required: true, max: 255, listed: true},
		{name: "password", label: "Password", typ: secret},
		{name: "isValidated", label: "Validated", typ: boolean, listed: true},
		comments,
	},
	models.KindAppRole: {
		{name: "name", label: "Name", required: true, max: 255, listed: true},
		{name: "description", label: "Description", max: 1000, listed: true},
		comments,
	},
	models.KindAppPermission: {
		{name: "name", label: "Name", required: true, max: 255, listed: true},
		{name: "description", label: "Description", max: 1000, listed: true},
		comments,
	},
}

func init() {
	for _, rt := range reftypes.All() {
		layouts[rt.Kind()] = refColumns(rt)
	}
}

func refColumns(rt reftypes.RefType) []column {
	var cols []column
	for _, f := range reftypes.Fields(rt) {
		c := column{name: f.Key, label: f.Label, required: f.Required, max: f.MaxLen, listed: true}
		if f.Kind == reftypes.FieldBool {
			c.typ = boolean
		}
		cols = append(cols, c)
	}
	return cols
}

func listed(kind models.Kind) []column {
	var out []column
	for _, c := range layouts[kind] {
		if c.listed {
			out = append(out, c)
		}
	}
	return out
}

var yesNo = []view.Option{{Value: true, Label: "Yes"}, {Value: false, Label: "No"}}

// field builds the prompt for c. cur is the record's current value, if any.
func (c column) field(component string, cur any) view.Field {
	spec := view.FieldSpec{
		Name:     c.name,
		Key:      component + "--" + c.label,
		Value:    cellText(cur),
		Required: c.required,
	}
	switch c.typ {
	case boolean:
		return view.SelectField{FieldSpec: spec, Options: yesNo}
	case date:
		return view.DateField{FieldSpec: spec}
	case digits:
		return view.TextField{FieldSpec: spec, Numeric: true, MaxLength: c.max}
	case integer:
		if spec.Value == "0" {
			spec.Value = ""
		}
		return view.TextField{FieldSpec: spec, Integer: true}
	case decimal:
		return view.TextField{FieldSpec: spec, Decimal: true}
	}
	return view.TextField{FieldSpec: spec, MaxLength: c.max}
}

// formFor builds the add/edit form of kind; cur holds the current record
// for edits. Secret columns are read separately.
func formFor(kind models.Kind, title string, cur map[string]any) view.Form {
	form := view.Form{Title: title}
	for _, c := range layouts[kind] {
		if c.typ == secret {
			continue
		}
		form.Fields = append(form.Fields, c.field(kind.String(), cur[c.name]))
	}
	return form
}

// cellText renders a decoded JSON value for display.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	case string:
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format(view.DateLayout)
			}
			return t.Format("2006-01-02 15:04")
		}
		return x
	case []any:
		return fmt.Sprintf("%d items", len(x))
	case map[string]any:
		for _, k := range []string{"name", "fullName", "componentName", "id"} {
			if s, ok := x[k]; ok {
				return cellText(s)
			}
		}
		return ""
	}
	return fmt.Sprint(v)
}

// extraKeys returns the keys of rec not covered by kind's layout, sorted.
func extraKeys(kind models.Kind, rec map[string]any) []string {
	known := map[string]bool{"id": true}
	for _, c := range layouts[kind] {
		known[c.name] = true
	}
	var out []string
	for k := range rec {
		if !known[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
