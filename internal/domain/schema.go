package domain

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindLongText FieldKind = "longtext"
	KindEmail    FieldKind = "email"
	KindURL      FieldKind = "url"
	KindBool     FieldKind = "bool"
	KindInt      FieldKind = "int"
	KindEnum     FieldKind = "enum"
	KindList     FieldKind = "list"
	KindIcon     FieldKind = "icon"
)

// Field describes one form input and how its raw text maps onto the API payload.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	MaxLen   int
	Min      int
	Max      int // range is checked only when Max > Min
	Options  []string
	Hint     string
}

// Choices returns the values a selector field cycles through.
func (f Field) Choices() []string {
	switch f.Kind {
	case KindBool:
		return []string{"", "yes", "no"}
	case KindIcon:
		return append([]string{""}, IconNames()...)
	case KindEnum:
		if f.Required {
			return f.Options
		}
		return append([]string{""}, f.Options...)
	default:
		return nil
	}
}

func (f Field) IsChoice() bool {
	return f.Kind == KindBool || f.Kind == KindEnum || f.Kind == KindIcon
}

type Schema struct {
	Fields []Field
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldErrors maps a field name to its inline message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fe[name]))
	}
	return strings.Join(parts, "; ")
}

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// checks every field, returns nil when the values are acceptable
func (s Schema) Validate(values map[string]string) FieldErrors {
	errs := FieldErrors{}
	for _, f := range s.Fields {
		if msg := f.check(strings.TrimSpace(values[f.Name])); msg != "" {
			errs[f.Name] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f Field) check(v string) string {
	if v == "" {
		if f.Required {
			return f.Label + " is required"
		}
		return ""
	}

	if f.MaxLen > 0 && len([]rune(v)) > f.MaxLen {
		return fmt.Sprintf("%s cannot exceed %d characters", f.Label, f.MaxLen)
	}

	switch f.Kind {
	case KindEmail:
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return f.Label + " must be a valid email address"
		}
	case KindURL:
		if !isHTTPURL(v) {
			return f.Label + " must be a valid http(s) URL"
		}
	case KindBool:
		if _, ok := ParseBool(v); !ok {
			return f.Label + " must be yes or no"
		}
	case KindInt:
		n, err := strconv.Atoi(v)
		if err != nil {
			return f.Label + " must be a whole number"
		}
		if f.Max > f.Min && (n < f.Min || n > f.Max) {
			return fmt.Sprintf("%s must be between %d and %d", f.Label, f.Min, f.Max)
		}
	case KindEnum:
		if !contains(f.Options, v) {
			return fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Options, ", "))
		}
	case KindIcon:
		if !Icon(strings.ToLower(v)).Valid() {
			return f.Label + " is not a supported icon"
		}
	}
	return ""
}

// Payload builds a create body. Empty optional values are left out entirely.
func (s Schema) Payload(values map[string]string) (map[string]any, error) {
	if errs := s.Validate(values); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	payload := make(map[string]any)
	for _, f := range s.Fields {
		v := strings.TrimSpace(values[f.Name])
		if v == "" {
			continue
		}
		payload[f.Name] = f.typed(v)
	}
	return payload, nil
}

// PatchPayload builds an update body holding only changed fields. A field that
// was set and is now empty is sent as null so the server clears it.
func (s Schema) PatchPayload(original, values map[string]string) (map[string]any, error) {
	if errs := s.Validate(values); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	payload := make(map[string]any)
	for _, f := range s.Fields {
		before := f.canonical(strings.TrimSpace(original[f.Name]))
		after := f.canonical(strings.TrimSpace(values[f.Name]))
		if before == after {
			continue
		}
		if after == "" {
			payload[f.Name] = nil
			continue
		}
		payload[f.Name] = f.typed(strings.TrimSpace(values[f.Name]))
	}
	return payload, nil
}

func (f Field) typed(v string) any {
	switch f.Kind {
	case KindBool:
		b, _ := ParseBool(v)
		return b
	case KindInt:
		n, _ := strconv.Atoi(v)
		return n
	case KindList:
		return SplitList(v)
	case KindIcon:
		return string(ParseIcon(v))
	default:
		return v
	}
}

func (f Field) canonical(v string) string {
	if v == "" {
		return ""
	}
	switch f.Kind {
	case KindBool:
		if b, ok := ParseBool(v); ok {
			return strconv.FormatBool(b)
		}
	case KindInt:
		if n, err := strconv.Atoi(v); err == nil {
			return strconv.Itoa(n)
		}
	case KindList:
		return strings.Join(SplitList(v), ",")
	case KindIcon:
		return string(ParseIcon(v))
	}
	return v
}

// Values maps a decoded API record onto raw form values, one per field.
func (s Schema) Values(record map[string]any) map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = f.format(record[f.Name])
	}
	return values
}

// ValuesOf does the same for any JSON-encodable entity.
func (s Schema) ValuesOf(v any) (map[string]string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return s.Values(record), nil
}

func (f Field) format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := f.format(item); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", ")
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}

// ParseBool accepts the spellings people type into a form.
func ParseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "t", "1", "on":
		return true, true
	case "no", "n", "false", "f", "0", "off":
		return false, true
	}
	return false, false
}

func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func SplitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isHTTPURL(v string) bool {
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
