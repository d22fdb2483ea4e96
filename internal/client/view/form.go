package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the input format of DateField.
const DateLayout = "2006-01-02"

// FieldKey identifies a field declared as "COMPONENT--LABEL".
type FieldKey struct {
	Component string
	Label     string
	ID        string
}

// ParseFieldKey splits "CLIENT--Phone Number" into its component and label
// and derives the id "client-phone-number". A key without "--" is all label.
func ParseFieldKey(key string) FieldKey {
	comp, label, ok := strings.Cut(key, "--")
	if !ok {
		comp, label = "", key
	}
	comp, label = strings.TrimSpace(comp), strings.TrimSpace(label)
	id := strings.ToLower(strings.Join(strings.Fields(label), "-"))
	if comp != "" {
		id = strings.ToLower(comp) + "-" + id
	}
	return FieldKey{Component: comp, Label: label, ID: id}
}

var ErrRequired = errors.New("value is required")

// FieldSpec is shared by every field kind.
type FieldSpec struct {
	// Name is the record key the parsed value is stored under.
	Name string
	// Key is the "COMPONENT--LABEL" declaration.
	Key string
	// Value is shown as the default; empty input keeps it.
	Value    string
	Required bool
}

func (s FieldSpec) FieldKey() FieldKey { return ParseFieldKey(s.Key) }

// Field is one form prompt.
type Field interface {
	Spec() FieldSpec
	// Hint is printed after the label, e.g. the accepted options.
	Hint() string
	Parse(input string) (any, error)
}

// TextField reads free text. Numeric keeps digits-only input as a string
// (phone numbers, zip codes); Integer and Decimal parse it to a number.
type TextField struct {
	FieldSpec
	Numeric   bool
	Integer   bool
	Decimal   bool
	MaxLength int
}

func (f TextField) Spec() FieldSpec { return f.FieldSpec }

func (f TextField) Hint() string {
	switch {
	case f.Decimal, f.Integer:
		return "number"
	case f.Numeric && f.MaxLength > 0:
		return fmt.Sprintf("%d digits max", f.MaxLength)
	case f.Numeric:
		return "digits"
	}
	return ""
}

func (f TextField) Parse(in string) (any, error) {
	if f.MaxLength > 0 && utf8.RuneCountInString(in) > f.MaxLength {
		return nil, fmt.Errorf("at most %d characters", f.MaxLength)
	}
	switch {
	case f.Decimal:
		v, err := strconv.ParseFloat(in, 64)
		if err != nil {
			return nil, errors.New("must be a number")
		}
		return v, nil
	case f.Integer:
		v, err := strconv.ParseInt(in, 10, 64)
		if err != nil {
			return nil, errors.New("must be a whole number")
		}
		return v, nil
	case f.Numeric:
		for _, r := range in {
			if r < '0' || r > '9' {
				return nil, errors.New("digits only")
			}
		}
	}
	return in, nil
}

// Option is one SelectField choice.
type Option struct {
	Value any
	Label string
}

// SelectField accepts the 1-based index of an option, its label, or its
// value.
type SelectField struct {
	FieldSpec
	Options []Option
}

func (f SelectField) Spec() FieldSpec { return f.FieldSpec }

func (f SelectField) Hint() string {
	parts := make([]string, len(f.Options))
	for i, o := range f.Options {
		parts[i] = fmt.Sprintf("%d) %s", i+1, o.Label)
	}
	return strings.Join(parts, ", ")
}

func (f SelectField) Parse(in string) (any, error) {
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1].Value, nil
	}
	for _, o := range f.Options {
		if strings.EqualFold(o.Label, in) || fmt.Sprint(o.Value) == in {
			return o.Value, nil
		}
	}
	return nil, fmt.Errorf("unknown option %q", in)
}

// DateField parses DateLayout dates within the optional [Min, Max] bounds.
type DateField struct {
	FieldSpec
	Min time.Time
	Max time.Time
}

func (f DateField) Spec() FieldSpec { return f.FieldSpec }

func (f DateField) Hint() string { return "YYYY-MM-DD" }

func (f DateField) Parse(in string) (any, error) {
	d, err := time.Parse(DateLayout, in)
	if err != nil {
		return nil, fmt.Errorf("expected a date as YYYY-MM-DD")
	}
	if !f.Min.IsZero() && d.Before(f.Min) {
		return nil, fmt.Errorf("must be on or after %s", f.Min.Format(DateLayout))
	}
	if !f.Max.IsZero() && d.After(f.Max) {
		return nil, fmt.Errorf("must be on or before %s", f.Max.Format(DateLayout))
	}
	return d, nil
}

// Form prompts for its fields in order.
type Form struct {
	Title  string
	Fields []Field
}

func prompt(f Field) string {
	spec := f.Spec()
	p := spec.FieldKey().Label
	if h := f.Hint(); h != "" {
		p += " (" + h + ")"
	}
	if spec.Required {
		p += " *"
	}
	if spec.Value != "" {
		p += " [" + spec.Value + "]"
	}
	return p
}

// Fill reads one value per field. Empty input keeps the current value, or
// leaves an optional field out. Invalid input is reported and asked again.
// The result holds only the fields that were set.
func (f Form) Fill(r *bufio.Reader, w io.Writer) (map[string]any, error) {
	if f.Title != "" {
		fmt.Fprintln(w, f.Title)
	}
	out := make(map[string]any, len(f.Fields))
	for _, field := range f.Fields {
		spec := field.Spec()
		for {
			fmt.Fprintf(w, "%s\n> ", prompt(field))
			line, err := r.ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && line != "") {
				return nil, err
			}
			in := strings.TrimSpace(line)
			if in == "" {
				in = spec.Value
			}
			if in == "" {
				if spec.Required {
					fmt.Fprintf(w, "%s: %v\n", spec.FieldKey().Label, ErrRequired)
					if err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			v, perr := field.Parse(in)
			if perr != nil {
				fmt.Fprintf(w, "%s: %v\n", spec.FieldKey().Label, perr)
				if err != nil {
					return nil, err
				}
				continue
			}
			out[spec.Name] = v
			break
		}
	}
	return out, nil
}
