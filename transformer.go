package tether

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Transformer converts a raw property value into a value of one destination type.
type Transformer func(raw any) (any, error)

// Char is a single-character destination type. A rune field is an int32 and
// binds as a number; declare the field as Char to bind the first character
// of the text instead.
type Char rune

// String returns the character as text.
func (c Char) String() string { return string(rune(c)) }

// TypeNamePrefix is stripped from type-reference values, so the output of
// printing a type descriptor binds back to the same type.
const TypeNamePrefix = "class "

var typeRefType = reflect.TypeFor[reflect.Type]()

// Registry maps destination types to transformers. A Registry is read-only
// after construction and safe to share between binders and goroutines.
type Registry struct {
	transformers map[reflect.Type]Transformer
	layouts      []dateLayout
	location     *time.Location
	types        map[string]reflect.Type
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	dateFormats  []string
	location     *time.Location
	transformers map[reflect.Type]Transformer
	types        []reflect.Type
}

// WithDateFormats replaces the ordered list of date patterns tried by the
// time.Time transformer.
func WithDateFormats(patterns ...string) RegistryOption {
	return func(c *registryConfig) {
		c.dateFormats = append([]string(nil), patterns...)
	}
}

// WithLocation sets the zone used for dates whose pattern carries no offset.
// Defaults to time.Local.
func WithLocation(loc *time.Location) RegistryOption {
	return func(c *registryConfig) {
		c.location = loc
	}
}

// WithTransformer registers fn for exactly typ, replacing any builtin.
func WithTransformer(typ reflect.Type, fn Transformer) RegistryOption {
	return func(c *registryConfig) {
		if c.transformers == nil {
			c.transformers = make(map[reflect.Type]Transformer)
		}
		c.transformers[typ] = fn
	}
}

// WithTypes adds types to the catalog consulted by the reflect.Type transformer.
func WithTypes(types ...reflect.Type) RegistryOption {
	return func(c *registryConfig) {
		c.types = append(c.types, types...)
	}
}

// NewRegistry builds a registry with the builtin transformers plus any
// option overrides. It fails only on date patterns it cannot translate.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{
		dateFormats: DefaultDateFormats,
		location:    time.Local,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		location: cfg.location,
		types:    make(map[string]reflect.Type),
	}
	for _, pattern := range cfg.dateFormats {
		l, err := compileDateFormat(pattern)
		if err != nil {
			return nil, err
		}
		r.layouts = append(r.layouts, l)
	}

	r.transformers = builtinTransformers(r)
	for typ, fn := range cfg.transformers {
		r.transformers[typ] = fn
	}

	for typ := range r.transformers {
		r.addType(typ)
	}
	for _, typ := range cfg.types {
		r.addType(typ)
	}
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry with builtin
// transformers and DefaultDateFormats. It is built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry()
		if err != nil {
			// DefaultDateFormats are fixed; a failure here is a programming error.
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

func (r *Registry) addType(typ reflect.Type) {
	r.types[typ.String()] = typ
	if typ.PkgPath() != "" {
		r.types[typ.PkgPath()+"."+typ.Name()] = typ
	}
}

// Lookup returns the transformer registered for exactly typ.
func (r *Registry) Lookup(typ reflect.Type) (Transformer, bool) {
	fn, ok := r.transformers[typ]
	return fn, ok
}

// Transform converts raw to typ. Values that already have exactly typ, and
// values for types without a transformer, are returned unchanged.
func (r *Registry) Transform(typ reflect.Type, raw any) (any, error) {
	if raw != nil && reflect.TypeOf(raw) == typ {
		return raw, nil
	}
	fn, ok := r.transformers[typ]
	if !ok {
		return raw, nil
	}
	return fn(raw)
}

// ResolveType looks a type up by name in the catalog.
func (r *Registry) ResolveType(name string) (reflect.Type, error) {
	name = strings.TrimSpace(strings.TrimPrefix(name, TypeNamePrefix))
	if typ, ok := r.types[name]; ok {
		return typ, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
}

// builtinTransformers returns the default transformer table for r.
func builtinTransformers(r *Registry) map[reflect.Type]Transformer {
	t := map[reflect.Type]Transformer{
		reflect.TypeFor[bool]():          transformBool,
		reflect.TypeFor[Char]():          transformChar,
		reflect.TypeFor[string]():        transformString,
		reflect.TypeFor[time.Time]():     r.transformTime,
		reflect.TypeFor[time.Duration](): transformDuration,
		typeRefType:                      r.transformType,
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
	} {
		t[typ] = intTransformer(typ)
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
	} {
		t[typ] = uintTransformer(typ)
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
	} {
		t[typ] = floatTransformer(typ)
	}
	return t
}

func transformBool(raw any) (any, error) {
	return strings.EqualFold(textOf(raw), "true"), nil
}

func transformChar(raw any) (any, error) {
	s := textOf(raw)
	if s == "" {
		return nil, ErrEmptyValue
	}
	c, _ := utf8.DecodeRuneInString(s)
	return Char(c), nil
}

func transformString(raw any) (any, error) {
	return textOf(raw), nil
}

func transformDuration(raw any) (any, error) {
	s := textOf(raw)
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNumberFormat, s, err)
	}
	return d, nil
}

func intTransformer(typ reflect.Type) Transformer {
	bits := typ.Bits()
	return func(raw any) (any, error) {
		s := textOf(raw)
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNumberFormat, s, err)
		}
		v := reflect.New(typ).Elem()
		v.SetInt(n)
		return v.Interface(), nil
	}
}

func uintTransformer(typ reflect.Type) Transformer {
	bits := typ.Bits()
	return func(raw any) (any, error) {
		s := textOf(raw)
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNumberFormat, s, err)
		}
		v := reflect.New(typ).Elem()
		v.SetUint(n)
		return v.Interface(), nil
	}
}

func floatTransformer(typ reflect.Type) Transformer {
	bits := typ.Bits()
	return func(raw any) (any, error) {
		s := textOf(raw)
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNumberFormat, s, err)
		}
		v := reflect.New(typ).Elem()
		v.SetFloat(f)
		return v.Interface(), nil
	}
}

// transformTime tries each configured pattern in order.
func (r *Registry) transformTime(raw any) (any, error) {
	s := textOf(raw)
	for _, l := range r.layouts {
		if t, err := time.ParseInLocation(l.layout, s, r.location); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no pattern matches %q", ErrUnparseableDate, s)
}

// transformType resolves a type name through the catalog.
func (r *Registry) transformType(raw any) (any, error) {
	if typ, ok := raw.(reflect.Type); ok {
		return typ, nil
	}
	return r.ResolveType(textOf(raw))
}

// textOf returns the textual form of a raw value. Floats are written
// without an exponent so that decoded document numbers parse as integers.
func textOf(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
