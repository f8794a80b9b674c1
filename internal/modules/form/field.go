package form

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/fieldpost/core/internal/pkg/sanitize"
)

// Well-known field types. Anything else is treated as a custom type and lands
// in the extra-field list.
const (
	TypeName     = "name"
	TypeEmail    = "email"
	TypeURL      = "url"
	TypeSubject  = "subject"
	TypeTextarea = "textarea"

	TypeText     = "text"
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
	TypeSelect   = "select"
)

// attrOption describes one recognized field attribute: its default and an
// optional normalization applied at construction time.
type attrOption struct {
	name      string
	def       string
	normalize func(string) string
}

var fieldAttrOptions = []attrOption{
	{name: "id", def: ""},
	{name: "label", def: "Field", normalize: sanitize.StripTags},
	{name: "type", def: TypeText, normalize: strings.ToLower},
	{name: "required", def: ""},
	{name: "default", def: ""},
	{name: "options", def: ""},
	{name: "placeholder", def: ""},
}

// Value is a submitted field value: a scalar string or a list of strings.
// Downstream code pattern-matches on the shape instead of assuming one.
type Value struct {
	scalar string
	list   []string
	isList bool
}

func Scalar(s string) Value { return Value{scalar: s} }

func List(items []string) Value { return Value{list: items, isList: true} }

// NormalizeValue collapses arbitrary request input into a Value. Nested
// structures flatten to a list of their string leaves.
func NormalizeValue(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Scalar("")
	case string:
		return Scalar(val)
	case []string:
		if len(val) == 1 {
			return Scalar(val[0])
		}
		return List(val)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			nested := NormalizeValue(item)
			if nested.isList {
				items = append(items, nested.list...)
				continue
			}
			items = append(items, nested.scalar)
		}
		if len(items) == 1 {
			return Scalar(items[0])
		}
		return List(items)
	default:
		return Scalar(fmt.Sprintf("%v", val))
	}
}

func (v Value) IsList() bool { return v.isList }

// String renders the value as a single string; list values join with ", ".
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, ", ")
	}
	return v.scalar
}

func (v Value) List() []string {
	if v.isList {
		return v.list
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

func (v Value) IsEmpty() bool {
	if v.isList {
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(v.scalar) == ""
}

// FieldError is one field-level validation failure. It never aborts the
// pipeline; the boundary decides what to do with the collected errors.
type FieldError struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

// Field is a single form-field definition plus its per-request state. The
// attribute set is fixed at construction; Value is populated once per
// submission and the field object is discarded at the end of the request.
type Field struct {
	attrs map[string]string

	Value Value
	Err   *FieldError
}

// NewField resolves the attribute bag against the option table. Unknown
// attributes are dropped.
func NewField(attrs map[string]string) *Field {
	resolved := make(map[string]string, len(fieldAttrOptions))
	for _, opt := range fieldAttrOptions {
		raw, ok := attrs[opt.name]
		if !ok || strings.TrimSpace(raw) == "" {
			resolved[opt.name] = opt.def
			continue
		}
		v := strings.TrimSpace(raw)
		if opt.normalize != nil {
			v = opt.normalize(v)
		}
		resolved[opt.name] = v
	}
	return &Field{attrs: resolved}
}

// Attr returns a normalized attribute, or "" for unknown names.
func (f *Field) Attr(name string) string { return f.attrs[name] }

func (f *Field) Label() string { return f.attrs["label"] }

func (f *Field) Type() string { return f.attrs["type"] }

func (f *Field) Required() bool {
	switch strings.ToLower(f.attrs["required"]) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func (f *Field) Default() string { return f.attrs["default"] }

// Options returns the comma-separated option list for choice-like types.
func (f *Field) Options() []string {
	raw := f.attrs["options"]
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks presence for required fields and shape for emails. The
// result is recorded on the field and returned; a nil return means valid.
func (f *Field) Validate() *FieldError {
	f.Err = nil

	if f.Required() && f.Value.IsEmpty() {
		f.Err = &FieldError{Label: f.Label(), Message: "this field is required"}
		return f.Err
	}

	if f.Type() == TypeEmail && !f.Value.IsEmpty() {
		if _, err := mail.ParseAddress(strings.TrimSpace(f.Value.String())); err != nil {
			f.Err = &FieldError{Label: f.Label(), Message: "please enter a valid email address"}
			return f.Err
		}
	}

	return nil
}
