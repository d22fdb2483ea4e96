// Package validate holds the client-side checks run before any mutation is
// sent. Errors are keyed by the JSON field name of the offending input.
package validate

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/common"
)

// Errors maps a field name to its message.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Error joins the messages in field order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

func (e Errors) Unwrap() error { return common.ErrValidation }

// Err returns e as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func required(e Errors, field, label, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, label+" is required")
	}
}

func requiredID(e Errors, field, label string, id models.ID) {
	if !id.Set() {
		e.Add(field, label+" is required")
	}
}

func maxLen(e Errors, field, label, value string, n int) {
	if len([]rune(value)) > n {
		e.Add(field, fmt.Sprintf("%s must be at most %d characters", label, n))
	}
}

func email(e Errors, field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil || !strings.Contains(value, "@") {
		e.Add(field, "Email is invalid")
	}
}

// Digits reports whether s is non-empty and numeric-only.
func Digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func phone(e Errors, field, value string) {
	if value == "" {
		return
	}
	if !Digits(value) || len(value) != 10 {
		e.Add(field, "Phone Number must be 10 digits")
	}
}

func nonNegative(e Errors, field, label string, v float64) {
	if v < 0 {
		e.Add(field, label+" cannot be negative")
	}
}

func comments(e Errors, base models.Base) {
	maxLen(e, "comments", "Comments", base.Comments, models.MaxCommentsLength)
}
