package tether

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register tether's tags with sentinel so scans carry them.
	for _, tag := range knownTags {
		sentinel.Tag(tag)
	}
}

// Wrapper is the per-type index of bindable slots. It is built once per
// struct type, cached process-wide, and shared by every Binder for that type.
type Wrapper struct {
	typ      reflect.Type
	typeName string
	index    map[string]*Descriptor
	order    []string
}

// Type returns the struct type this wrapper describes.
func (w *Wrapper) Type() reflect.Type { return w.typ }

// TypeName returns the struct's name as reported by the metadata scan.
func (w *Wrapper) TypeName() string { return w.typeName }

// Lookup returns the descriptor bound to key.
func (w *Wrapper) Lookup(key string) (*Descriptor, bool) {
	d, ok := w.index[key]
	return d, ok
}

// Keys returns every binding key in discovery order.
func (w *Wrapper) Keys() []string {
	return append([]string(nil), w.order...)
}

// Len returns the number of binding keys.
func (w *Wrapper) Len() int { return len(w.order) }

// buildWrapper scans T and indexes one descriptor per discoverable mutator.
// Fields come first in declaration order, with the fields of embedded structs
// in place of the embedding, then setter methods of *T in method-set order.
// A setter that serves a field is indexed again under its own key when that
// key differs from the field's. When two accessors derive the same key, the
// one discovered last wins.
func buildWrapper[T any]() (*Wrapper, error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotStruct, typ.Kind())
	}

	meta, err := sentinel.TryScan[T]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotStruct, err)
	}
	if meta.ReflectType != typ {
		// Types declared inside functions can share a cache name.
		meta = scanType(typ)
	}
	w := &Wrapper{
		typ:      typ,
		typeName: meta.TypeName,
		index:    make(map[string]*Descriptor),
	}
	if w.typeName == "" {
		w.typeName = typ.Name()
	}

	b := &wrapperBuild{
		w:          w,
		ptr:        reflect.PointerTo(typ),
		visible:    visibleFields(typ),
		methodTags: taggedMethods[T](),
		served:     make(map[string]*Descriptor),
		hidden:     make(map[string]bool),
	}
	if err := b.fields(typ, meta, nil); err != nil {
		return nil, err
	}
	if err := b.methods(); err != nil {
		return nil, err
	}
	return w, nil
}

// wrapperBuild carries the state of one buildWrapper call.
type wrapperBuild struct {
	w          *Wrapper
	ptr        reflect.Type
	visible    map[string]bool
	methodTags map[string]map[string]string

	// served maps setter names to the field descriptor they mutate.
	served map[string]*Descriptor
	// hidden holds setters of fields excluded with property:"-".
	hidden map[string]bool
}

// fields indexes the fields of owner, a struct reached from T through parent.
// Exported fields are described by the sentinel metadata; unexported fields,
// which the scan leaves out, only bind through a setter.
func (b *wrapperBuild) fields(owner reflect.Type, meta sentinel.Metadata, parent []int) error {
	scanned := make(map[int]sentinel.FieldMetadata, len(meta.Fields))
	for _, fm := range meta.Fields {
		scanned[fm.Index[0]] = fm
	}

	for i := 0; i < owner.NumField(); i++ {
		sf := owner.Field(i)
		fm, ok := scanned[i]
		if !ok {
			fm = fieldMetadata(sf)
		}
		sf.Index = append(append([]int(nil), parent...), fm.Index...)

		if sf.Anonymous {
			switch fm.Kind {
			case sentinel.KindPointer:
				// Promoted through a pointer that is nil on a fresh instance.
				continue
			case sentinel.KindStruct:
				if err := b.fields(fm.ReflectType, scanType(fm.ReflectType), sf.Index); err != nil {
					return err
				}
				continue
			}
		}
		if !b.visible[indexKey(sf.Index)] {
			continue
		}

		tags := scannedTags(fm, sf.Tag)
		if tags[TagProperty] == "-" {
			b.hidden[setterName(sf.Name)] = true
			continue
		}

		d, ok := descriptorFromField(b.ptr, sf, tags, b.methodTags)
		if !ok {
			continue
		}
		if d.Method != nil {
			b.served[d.Method.Name] = d
		}
		if err := validateDescriptor(d); err != nil {
			return err
		}
		b.w.add(d)
	}
	return nil
}

// methods indexes the setters of *T.
func (b *wrapperBuild) methods() error {
	for i := 0; i < b.ptr.NumMethod(); i++ {
		m := b.ptr.Method(i)
		if b.hidden[m.Name] {
			continue
		}

		var d *Descriptor
		if fd, ok := b.served[m.Name]; ok {
			d = fd.setterForm(AccessorKey(m.Name, fd.methodTags[TagProperty]))
			if d.Key == fd.Key {
				continue
			}
		} else if d, ok = descriptorFromMethod(m, b.methodTags[m.Name]); !ok {
			continue
		}
		if d.Key == "-" {
			continue
		}
		if err := validateDescriptor(d); err != nil {
			return err
		}
		b.w.add(d)
	}
	return nil
}

// add indexes d under its key, replacing any earlier descriptor.
func (w *Wrapper) add(d *Descriptor) {
	if prev, ok := w.index[d.Key]; ok {
		emitKeyShadowed(context.Background(), w.typeName, d.Key, prev.Name(), d.Name())
	} else {
		w.order = append(w.order, d.Key)
	}
	w.index[d.Key] = d
}

// scanType returns the metadata of an embedded struct type, from the
// sentinel cache when the scan of T reached it.
func scanType(rt reflect.Type) sentinel.Metadata {
	name := rt.Name()
	if rt.PkgPath() != "" {
		name = rt.PkgPath() + "." + name
	}
	if meta, ok := sentinel.Lookup(name); ok && meta.ReflectType == rt {
		return meta
	}

	meta := sentinel.Metadata{
		ReflectType: rt,
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
	}
	for i := 0; i < rt.NumField(); i++ {
		if sf := rt.Field(i); sf.IsExported() {
			meta.Fields = append(meta.Fields, fieldMetadata(sf))
		}
	}
	return meta
}

// fieldMetadata describes a field the way a sentinel scan does.
func fieldMetadata(sf reflect.StructField) sentinel.FieldMetadata {
	fm := sentinel.FieldMetadata{
		ReflectType: sf.Type,
		Tags:        make(map[string]string),
		Name:        sf.Name,
		Type:        sf.Type.String(),
		Index:       sf.Index,
	}
	for name, val := range parseTags(sf.Tag) {
		if val != "" {
			fm.Tags[name] = val
		}
	}
	switch sf.Type.Kind() {
	case reflect.Pointer:
		fm.Kind = sentinel.KindPointer
	case reflect.Struct:
		fm.Kind = sentinel.KindStruct
	case reflect.Slice, reflect.Array:
		fm.Kind = sentinel.KindSlice
	case reflect.Map:
		fm.Kind = sentinel.KindMap
	case reflect.Interface:
		fm.Kind = sentinel.KindInterface
	default:
		fm.Kind = sentinel.KindScalar
	}
	return fm
}

// scannedTags returns tether's tags for a field. Values come from the
// metadata; a scan omits empty values, so tags present with an empty value
// (redact:"") are taken from the raw struct tag.
func scannedTags(fm sentinel.FieldMetadata, raw reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range knownTags {
		if val, ok := fm.Tags[name]; ok {
			tags[name] = val
			continue
		}
		if val, ok := raw.Lookup(name); ok && val == "" {
			tags[name] = ""
		}
	}
	return tags
}

// visibleFields indexes the fields of typ that are reachable by name,
// leaving out promoted fields shadowed by shallower ones.
func visibleFields(typ reflect.Type) map[string]bool {
	visible := make(map[string]bool)
	for _, sf := range reflect.VisibleFields(typ) {
		visible[indexKey(sf.Index)] = true
	}
	return visible
}

func indexKey(index []int) string {
	return fmt.Sprint(index)
}

// taggedMethods collects Tagged metadata from a zero *T.
func taggedMethods[T any]() map[string]map[string]string {
	tagged, ok := any(new(T)).(Tagged)
	if !ok {
		return nil
	}
	raw := tagged.PropertyTags()
	tags := make(map[string]map[string]string, len(raw))
	for name, tag := range raw {
		tags[name] = parseTags(tag)
	}
	return tags
}

// validateDescriptor checks capability tags against known algorithms and
// the slot's type.
func validateDescriptor(d *Descriptor) error {
	isString := d.Type.Kind() == reflect.String

	if val, ok := d.Lookup(TagDecrypt); ok {
		if !IsValidDecryptAlgo(DecryptAlgo(val)) {
			return newConfigError(ErrInvalidTag, val, d.Name())
		}
		if !isString {
			return newConfigError(ErrInvalidTag, val, d.Name()+" (decrypt requires a string slot)")
		}
	}
	if val, ok := d.Lookup(TagHash); ok {
		if !IsValidHashAlgo(HashAlgo(val)) {
			return newConfigError(ErrInvalidTag, val, d.Name())
		}
		if !isString {
			return newConfigError(ErrInvalidTag, val, d.Name()+" (hash requires a string slot)")
		}
	}
	if val, ok := d.Lookup(TagMask); ok {
		if !IsValidMaskType(MaskType(val)) {
			return newConfigError(ErrInvalidTag, val, d.Name())
		}
	}
	return nil
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
