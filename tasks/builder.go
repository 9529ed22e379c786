package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/aixcyberchallenge/captcha-solver/internal/validator"
)

var validate = validator.Create()

// Required fields that were never set
type MissingFieldsError struct {
	Kind   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Kind, strings.Join(e.Fields, ", "))
}

// Field the kind does not define
type UnknownFieldError struct {
	Kind  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Kind, e.Field)
}

// Field value of the wrong type or failing the field's rule
type InvalidFieldError struct {
	Err   error
	Kind  string
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: invalid field %q: %s", e.Kind, e.Field, e.Err.Error())
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// Collects fields for a Task. Problems are reported together by Build.
type Builder[S any] struct {
	kind   *Kind
	fields map[string]any
	proxy  *Proxy
	errs   []error
}

func NewBuilder[S any](kind *Kind) *Builder[S] {
	return &Builder[S]{
		kind:   kind,
		fields: make(map[string]any, len(kind.Fields)),
	}
}

func (b *Builder[S]) Set(name string, value any) *Builder[S] {
	b.fields[name] = value
	return b
}

// Set a field from its textual form, parsing it according to the field's type
func (b *Builder[S]) SetString(name string, raw string) *Builder[S] {
	field, ok := b.kind.Field(name)
	if !ok {
		b.fields[name] = raw
		return b
	}

	var (
		value any
		err   error
	)
	switch field.Type {
	case Bool:
		value, err = strconv.ParseBool(raw)
	case Int:
		value, err = strconv.ParseInt(raw, 10, 64)
	case Float:
		value, err = strconv.ParseFloat(raw, 64)
	case Object:
		var obj any
		err = json.Unmarshal([]byte(raw), &obj)
		value = obj
	default:
		value = raw
	}
	if err != nil {
		b.errs = append(b.errs, &InvalidFieldError{Kind: b.kind.Name, Field: name, Err: err})
		return b
	}

	b.fields[name] = value
	return b
}

func (b *Builder[S]) WebsiteURL(websiteURL string) *Builder[S] {
	return b.Set("websiteURL", websiteURL)
}

func (b *Builder[S]) WebsiteKey(websiteKey string) *Builder[S] {
	return b.Set("websiteKey", websiteKey)
}

func (b *Builder[S]) UserAgent(userAgent string) *Builder[S] {
	return b.Set("userAgent", userAgent)
}

// Base64 encoded image or audio
func (b *Builder[S]) Body(body string) *Builder[S] {
	return b.Set("body", body)
}

func (b *Builder[S]) Comment(comment string) *Builder[S] {
	return b.Set("comment", comment)
}

// Base64 encoded image with instructions for the worker
func (b *Builder[S]) ImgInstructions(img string) *Builder[S] {
	return b.Set("imgInstructions", img)
}

func (b *Builder[S]) Cookies(cookies Cookies) *Builder[S] {
	if len(cookies) == 0 {
		delete(b.fields, "cookies")
		return b
	}
	return b.Set("cookies", cookies.String())
}

func (b *Builder[S]) Proxy(proxy Proxy) *Builder[S] {
	b.proxy = &proxy
	return b
}

// Validate the collected fields and produce an immutable Task.
//
// Every problem is reported in the returned error: a *MissingFieldsError lists all unset
// required fields, each unknown or invalid field gets its own error.
func (b *Builder[S]) Build() (*Task[S], error) {
	errs := append([]error(nil), b.errs...)
	fields := make(map[string]any, len(b.fields))

	for _, name := range slices.Sorted(maps.Keys(b.fields)) {
		value := b.fields[name]
		field, ok := b.kind.Field(name)
		if !ok {
			errs = append(errs, &UnknownFieldError{Kind: b.kind.Name, Field: name})
			continue
		}

		normalized, err := normalize(field, value)
		if err != nil {
			errs = append(errs, &InvalidFieldError{Kind: b.kind.Name, Field: name, Err: err})
			continue
		}
		fields[name] = normalized
	}

	var missing []string
	for _, name := range b.kind.RequiredFields() {
		if _, ok := b.fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if b.kind.ProxyRequired && b.proxy == nil {
		missing = append(missing, "proxy")
	}
	if len(missing) > 0 {
		errs = append(errs, &MissingFieldsError{Kind: b.kind.Name, Fields: missing})
	}

	if b.proxy != nil {
		if !b.kind.SupportsProxy() {
			errs = append(errs, &UnknownFieldError{Kind: b.kind.Name, Field: "proxy"})
		} else if err := validate.Validate(b.proxy); err != nil {
			errs = append(errs, &InvalidFieldError{Kind: b.kind.Name, Field: "proxy", Err: err})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var proxy *Proxy
	if b.proxy != nil {
		p := *b.proxy
		proxy = &p
	}

	return &Task[S]{
		kind:   b.kind.Clone(),
		fields: fields,
		proxy:  proxy,
	}, nil
}

func normalize(field Field, value any) (any, error) {
	var normalized any
	switch field.Type {
	case String:
		switch v := value.(type) {
		case string:
			normalized = v
		case fmt.Stringer:
			normalized = v.String()
		default:
			return nil, fmt.Errorf("expected string, got %T", value)
		}
	case Bool:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", value)
		}
		normalized = v
	case Int:
		v, ok := asInt(value)
		if !ok {
			return nil, fmt.Errorf("expected integer, got %T", value)
		}
		normalized = v
	case Float:
		v, ok := asFloat(value)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", value)
		}
		normalized = v
	case Object:
		// stored encoded so later changes to the caller's value cannot reach the task
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(raw), nil
	}

	if field.Rule != "" {
		if err := validate.Var(normalized, field.Rule); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		i, ok := asInt(value)
		return float64(i), ok
	}
}
