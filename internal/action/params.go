// params.go provides typed access to the generic parameter map.
//
// Parameters arrive as map[string]any decoded from JSON, so numbers are
// float64 and every field needs a type assertion. Required getters fail
// with MissingParameterError naming the parameter; optional getters are
// permissive and fall back to a default or nil, because clients
// frequently omit optional parameters and that should never produce a
// cryptic type error.

package action

import "fmt"

// Params is the generic parameter map of one invocation.
type Params map[string]any

// String returns a required string parameter.
func (p Params) String(name string) (string, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", &MissingParameterError{Name: name}
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string", name)
	}
	return s, nil
}

// StringDefault returns an optional string parameter.
func (p Params) StringDefault(name, def string) string {
	if s, ok := p[name].(string); ok {
		return s
	}
	return def
}

// Int returns a required integer parameter. JSON numbers decode as
// float64, so both forms are accepted.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return 0, &MissingParameterError{Name: name}
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("parameter %s must be an integer", name)
	}
	return n, nil
}

// IntDefault returns an optional integer parameter.
func (p Params) IntDefault(name string, def int) int {
	if n, ok := asInt(p[name]); ok {
		return n
	}
	return def
}

// OptionalInt returns a pointer to an integer parameter, or nil when the
// parameter is absent.
func (p Params) OptionalInt(name string) (*int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := asInt(v)
	if !ok {
		return nil, fmt.Errorf("parameter %s must be an integer", name)
	}
	return &n, nil
}

// BoolDefault returns an optional boolean parameter.
func (p Params) BoolDefault(name string, def bool) bool {
	if b, ok := p[name].(bool); ok {
		return b
	}
	return def
}

// OptionalBool returns a pointer to a boolean parameter, or nil when the
// parameter is absent.
func (p Params) OptionalBool(name string) *bool {
	if b, ok := p[name].(bool); ok {
		return &b
	}
	return nil
}

// OptionalFloat returns a pointer to a numeric parameter, or nil when the
// parameter is absent.
func (p Params) OptionalFloat(name string) *float64 {
	switch v := p[name].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

// OptionalString returns a pointer to a string parameter, or nil when the
// parameter is absent or empty.
func (p Params) OptionalString(name string) *string {
	if s, ok := p[name].(string); ok && s != "" {
		return &s
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
