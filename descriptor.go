package tether

import (
	"fmt"
	"reflect"
	"strings"
)

// Tags understood on fields and in Tagged method metadata.
const (
	TagDecrypt = "decrypt"
	TagHash    = "hash"
	TagMask    = "mask"
	TagRedact  = "redact"
)

var knownTags = []string{TagProperty, TagDecrypt, TagHash, TagMask, TagRedact}

var errorType = reflect.TypeFor[error]()

// Descriptor is one bindable slot on a target type: a field (assigned
// directly or through its setter) or a setter method on its own.
// Descriptors are built with their Wrapper and never change afterwards.
type Descriptor struct {
	// Key is the binding key the slot answers to.
	Key string

	// Type is the destination type values are converted to.
	Type reflect.Type

	// Field is the underlying struct field, nil for setter-only slots.
	Field *reflect.StructField

	// Method is the setter used as mutator, nil when the field is assigned directly.
	Method *reflect.Method

	fieldTags  map[string]string
	methodTags map[string]string
}

// descriptorFromField builds the descriptor for a struct field. The mutator
// is the field's conventional setter when *T has one, otherwise the field
// itself when it is exported. Fields with neither yield no descriptor.
func descriptorFromField(ptr reflect.Type, sf reflect.StructField, fieldTags map[string]string, methodTags map[string]map[string]string) (*Descriptor, bool) {
	d := &Descriptor{
		Type:      sf.Type,
		Field:     &sf,
		fieldTags: fieldTags,
	}

	if name := setterName(sf.Name); name != "" {
		if m, ok := ptr.MethodByName(name); ok && isSetter(m) && m.Type.In(1) == sf.Type {
			d.Method = &m
			d.methodTags = methodTags[m.Name]
		}
	}
	if d.Method == nil && !sf.IsExported() {
		return nil, false
	}

	override, _ := d.Lookup(TagProperty)
	d.Key = FieldKey(sf.Name, override)
	return d, true
}

// descriptorFromMethod builds the descriptor for a setter method found on *T.
func descriptorFromMethod(m reflect.Method, methodTags map[string]string) (*Descriptor, bool) {
	if !isSetter(m) {
		return nil, false
	}
	d := &Descriptor{
		Type:       m.Type.In(1),
		Method:     &m,
		methodTags: methodTags,
	}
	override, _ := d.Lookup(TagProperty)
	d.Key = AccessorKey(m.Name, override)
	return d, true
}

// setterForm returns a copy of the field descriptor d answering to key, the
// key its setter derives on its own.
func (d *Descriptor) setterForm(key string) *Descriptor {
	c := *d
	c.Key = key
	return &c
}

// isSetter reports whether m looks like SetX(v) or SetX(v) error on a pointer receiver.
func isSetter(m reflect.Method) bool {
	if len(m.Name) <= len("Set") || !strings.HasPrefix(m.Name, "Set") {
		return false
	}
	t := m.Type
	if t.NumIn() != 2 || t.IsVariadic() {
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errorType
	default:
		return false
	}
}

// Name returns the accessor name used in messages.
func (d *Descriptor) Name() string {
	if d.Field != nil {
		return d.Field.Name
	}
	return d.Method.Name
}

// Lookup returns the value of the named tag, checking the field first and
// the setter's Tagged metadata second.
func (d *Descriptor) Lookup(tag string) (string, bool) {
	if v, ok := d.fieldTags[tag]; ok {
		return v, true
	}
	if v, ok := d.methodTags[tag]; ok {
		return v, true
	}
	return "", false
}

// Sensitive reports whether the slot holds a secret that must not be
// echoed in logs.
func (d *Descriptor) Sensitive() bool {
	for _, tag := range []string{TagDecrypt, TagHash, TagMask, TagRedact} {
		if _, ok := d.Lookup(tag); ok {
			return true
		}
	}
	return false
}

// Set assigns v onto the slot of target, which must be a non-nil *T.
func (d *Descriptor) Set(target, v reflect.Value) (err error) {
	if !v.IsValid() {
		v = reflect.Zero(d.Type)
	}
	if !v.Type().AssignableTo(d.Type) {
		return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), d.Type)
	}

	if d.Method == nil {
		target.Elem().FieldByIndex(d.Field.Index).Set(v)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrSetter, d.Method.Name, r)
		}
	}()
	out := target.Method(d.Method.Index).Call([]reflect.Value{v})
	if len(out) == 1 && !out[0].IsNil() {
		return fmt.Errorf("%w: %s: %w", ErrSetter, d.Method.Name, out[0].Interface().(error))
	}
	return nil
}

// Get reads the current value of the slot: the field when it is exported,
// otherwise the Go getter matching the setter (SetPort -> Port).
func (d *Descriptor) Get(target reflect.Value) (reflect.Value, bool) {
	if d.Field != nil && d.Field.IsExported() {
		return target.Elem().FieldByIndex(d.Field.Index), true
	}
	if d.Method == nil {
		return reflect.Value{}, false
	}
	getter := target.MethodByName(getterName(d.Method.Name))
	if !getter.IsValid() {
		return reflect.Value{}, false
	}
	t := getter.Type()
	if t.NumIn() != 0 || t.NumOut() == 0 || t.Out(0) != d.Type {
		return reflect.Value{}, false
	}
	return getter.Call(nil)[0], true
}

// parseTags extracts the tags tether understands from a struct tag.
func parseTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range knownTags {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}
