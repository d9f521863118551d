package tether

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Outcome is the result of binding one key.
type Outcome int

const (
	// OutcomeSkipped means no slot claimed the key.
	OutcomeSkipped Outcome = iota
	// OutcomeApplied means the value was converted and assigned.
	OutcomeApplied
	// OutcomeFailed means conversion or assignment failed and was reported.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result counts outcomes across a batch of keys.
type Result struct {
	Applied int
	Skipped int
	Failed  int
}

// Total returns the number of keys seen.
func (r Result) Total() int { return r.Applied + r.Skipped + r.Failed }

func (r *Result) add(o Outcome) {
	switch o {
	case OutcomeApplied:
		r.Applied++
	case OutcomeFailed:
		r.Failed++
	default:
		r.Skipped++
	}
}

// Binder owns one instance of T and binds key/value pairs onto it.
//
// Init and InitWith are safe to call from several goroutines; the first call
// wins and later calls return its error. Put and the batch methods mutate the
// instance and must not run concurrently with each other.
//
// Every per-key failure is reported through the Printer and counted. Only Init
// and source decoding return errors.
type Binder[T any] struct {
	once    sync.Once
	initErr error
	obj     *T
	wrapper *Wrapper

	registry   *Registry
	printer    Printer
	decrypters map[DecryptAlgo]Decrypter
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker

	typeName string
}

// NewBinder creates a Binder for T. The instance does not exist until Init
// or InitWith is called.
func NewBinder[T any](opts ...Option) *Binder[T] {
	cfg := binderConfig{
		decrypters: make(map[DecryptAlgo]Decrypter),
		hashers:    builtinHashers(),
		maskers:    builtinMaskers(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	typ := reflect.TypeFor[T]()
	name := typ.Name()
	if name == "" {
		name = typ.String()
	}

	b := &Binder[T]{
		registry:   cfg.registry,
		printer:    cfg.printer,
		decrypters: cfg.decrypters,
		hashers:    cfg.hashers,
		maskers:    cfg.maskers,
		typeName:   name,
	}
	emitBinderCreated(context.Background(), name)
	return b
}

// Init allocates a new T, runs its Constructor if it has one, and prepares
// binding. Repeated calls are no-ops that return the first call's error.
func (b *Binder[T]) Init() error {
	return b.init(nil)
}

// InitWith adopts obj as the instance instead of allocating one. The
// Constructor hook is not run on adopted instances. A nil obj is rejected
// without consuming the one-time initialization.
func (b *Binder[T]) InitWith(obj *T) error {
	if obj == nil {
		return ErrNilObject
	}
	return b.init(obj)
}

func (b *Binder[T]) init(obj *T) error {
	b.once.Do(func() {
		start := time.Now()
		b.initErr = b.prepare(obj)
		slots := 0
		if b.wrapper != nil {
			slots = b.wrapper.Len()
		}
		emitInitComplete(context.Background(), b.typeName, slots, time.Since(start), b.initErr)
	})
	return b.initErr
}

func (b *Binder[T]) prepare(obj *T) error {
	w, err := wrapperFor[T]()
	if err != nil {
		return err
	}
	if err := b.checkCapabilities(w); err != nil {
		return err
	}
	if obj == nil {
		if obj, err = construct[T](w.TypeName()); err != nil {
			return err
		}
	}
	b.wrapper = w
	b.typeName = w.TypeName()
	b.obj = obj
	return nil
}

// construct allocates a T and runs its Constructor hook.
func construct[T any](typeName string) (obj *T, err error) {
	obj = new(T)
	c, ok := any(obj).(Constructor)
	if !ok {
		return obj, nil
	}
	defer func() {
		if r := recover(); r != nil {
			obj = nil
			err = fmt.Errorf("%w: %s panicked: %v", ErrConstruct, typeName, r)
		}
	}()
	if cerr := c.Construct(); cerr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruct, typeName, cerr)
	}
	return obj, nil
}

// checkCapabilities verifies every capability tag has a handler configured.
func (b *Binder[T]) checkCapabilities(w *Wrapper) error {
	for _, key := range w.Keys() {
		d, _ := w.Lookup(key)
		if algo, ok := d.Lookup(TagDecrypt); ok && b.decrypters[DecryptAlgo(algo)] == nil {
			return newConfigError(ErrMissingDecrypter, algo, d.Name())
		}
		if algo, ok := d.Lookup(TagHash); ok && b.hashers[HashAlgo(algo)] == nil {
			return newConfigError(ErrMissingHasher, algo, d.Name())
		}
		if mt, ok := d.Lookup(TagMask); ok && b.maskers[MaskType(mt)] == nil {
			return newConfigError(ErrMissingMasker, mt, d.Name())
		}
	}
	return nil
}

// Object returns the bound instance, nil before a successful Init.
func (b *Binder[T]) Object() *T { return b.obj }

// Wrapper returns the slot index for T, nil before a successful Init.
func (b *Binder[T]) Wrapper() *Wrapper { return b.wrapper }

// Put binds one value to the slot that answers to key. Unknown keys are
// skipped. Failures are reported and never returned or raised.
func (b *Binder[T]) Put(key string, value any) Outcome {
	ctx := context.Background()

	if b.obj == nil {
		err := newBindError(ErrNotInitialized, "put", key, nil, b.initErr)
		b.report(ctx, key, "", err)
		return OutcomeFailed
	}

	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}

	d, ok := b.wrapper.Lookup(key)
	if !ok {
		return b.putUnclaimed(ctx, key, value)
	}

	if err := b.apply(d, key, value); err != nil {
		b.report(ctx, key, b.failureText(d, value), err)
		return OutcomeFailed
	}
	emitPutApplied(ctx, b.typeName, key)
	return OutcomeApplied
}

// putUnclaimed hands a key without a slot to the PropertySetter hook.
func (b *Binder[T]) putUnclaimed(ctx context.Context, key string, value any) Outcome {
	ps, ok := any(b.obj).(PropertySetter)
	if !ok {
		emitPutSkipped(ctx, b.typeName, key)
		return OutcomeSkipped
	}

	text := textOf(value)
	consumed, err := callPropertySetter(ps, key, text)
	if err != nil {
		b.report(ctx, key, text, newBindError(ErrSetter, "assign", key, text, err))
		return OutcomeFailed
	}
	if !consumed {
		emitPutSkipped(ctx, b.typeName, key)
		return OutcomeSkipped
	}
	emitPutApplied(ctx, b.typeName, key)
	return OutcomeApplied
}

func callPropertySetter(ps PropertySetter, key, value string) (consumed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			consumed, err = false, fmt.Errorf("SetProperty panicked: %v", r)
		}
	}()
	return ps.SetProperty(key, value)
}

// apply runs the decrypt, transform, hash and assign steps for one slot.
func (b *Binder[T]) apply(d *Descriptor, key string, value any) error {
	shown := b.failureText(d, value)

	if algo, ok := d.Lookup(TagDecrypt); ok {
		plain, err := b.decrypt(DecryptAlgo(algo), textOf(value))
		if err != nil {
			return newBindError(ErrDecrypt, "decrypt", key, shown, err)
		}
		value = plain
	}

	converted, err := b.registry.Transform(d.Type, value)
	if err != nil {
		return newBindError(ErrTransform, "transform", key, shown, err)
	}

	if algo, ok := d.Lookup(TagHash); ok {
		hashed, err := b.hashers[HashAlgo(algo)].Hash([]byte(textOf(converted)))
		if err != nil {
			return newBindError(ErrHash, "hash", key, shown, err)
		}
		converted = hashed
	}

	if err := d.Set(reflect.ValueOf(b.obj), convertKind(reflect.ValueOf(converted), d.Type)); err != nil {
		sentinel := ErrNotAssignable
		if errors.Is(err, ErrSetter) {
			sentinel = ErrSetter
		}
		return newBindError(sentinel, "assign", key, shown, err)
	}
	return nil
}

// convertKind converts v to typ when both share a kind, so values for named
// string and number types assign without a registered transformer.
func convertKind(v reflect.Value, typ reflect.Type) reflect.Value {
	if !v.IsValid() || v.Type().AssignableTo(typ) {
		return v
	}
	if v.Kind() == typ.Kind() && v.Type().ConvertibleTo(typ) {
		return v.Convert(typ)
	}
	return v
}

func (b *Binder[T]) decrypt(algo DecryptAlgo, sealed string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("base64: %w", err)
	}
	plaintext, err := b.decrypters[algo].Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// report sends a failure to the printer and the failure signal.
func (b *Binder[T]) report(ctx context.Context, key, shown string, err error) {
	p := b.printer
	if p == nil {
		p = DefaultPrinter()
	}
	p.Print(fmt.Sprintf("cannot bind value %q to key %q of %s", shown, key, b.typeName), err)
	emitPutFailed(ctx, b.typeName, key, err)
}

// failureText renders a raw value for failure reports. Values bound for
// sensitive slots are hidden.
func (b *Binder[T]) failureText(d *Descriptor, value any) string {
	text := textOf(value)
	if replacement, ok := d.Lookup(TagRedact); ok {
		return redaction(replacement)
	}
	if mt, ok := d.Lookup(TagMask); ok {
		return b.maskers[MaskType(mt)].Mask(text)
	}
	if d.Sensitive() {
		return secretMask
	}
	return text
}

// RedactedText replaces values of redact-tagged slots whose tag is empty.
const RedactedText = "[REDACTED]"

func redaction(replacement string) string {
	if replacement == "" {
		return RedactedText
	}
	return replacement
}

// PutPairs binds pairs in slice order.
func (b *Binder[T]) PutPairs(pairs []Pair) Result {
	start := time.Now()
	var res Result
	for _, p := range pairs {
		res.add(b.Put(p.Key, p.Value))
	}
	emitPutAllComplete(context.Background(), b.typeName, res, time.Since(start))
	return res
}

// PutAll binds every entry of values in lexical key order.
func (b *Binder[T]) PutAll(values map[string]any) Result {
	return b.PutPairs(PairsOf(values))
}

// PutStrings binds every entry of values in lexical key order.
func (b *Binder[T]) PutStrings(values map[string]string) Result {
	return b.PutPairs(PairsOf(values))
}

// Load decodes data with src and binds the resulting pairs. Only decoding
// failures are returned.
func (b *Binder[T]) Load(src Source, data []byte) (Result, error) {
	ctx := context.Background()
	pairs, err := src.Decode(data)
	if err != nil {
		var se *SourceError
		if !errors.As(err, &se) {
			err = newSourceError(src.ContentType(), err)
		}
		emitSourceDecoded(ctx, src.ContentType(), 0, err)
		return Result{}, err
	}
	emitSourceDecoded(ctx, src.ContentType(), len(pairs), nil)
	return b.PutPairs(pairs), nil
}

// Snapshot renders the current value of every readable slot as text, with
// mask and redact tags applied and decrypted secrets hidden. It is meant for
// logging the effective configuration.
func (b *Binder[T]) Snapshot() map[string]string {
	if b.obj == nil {
		return nil
	}
	target := reflect.ValueOf(b.obj)
	out := make(map[string]string, b.wrapper.Len())
	for _, key := range b.wrapper.Keys() {
		d, _ := b.wrapper.Lookup(key)
		v, ok := d.Get(target)
		if !ok || !v.CanInterface() {
			continue
		}
		out[key] = b.snapshotText(d, textOf(v.Interface()))
	}
	return out
}

func (b *Binder[T]) snapshotText(d *Descriptor, text string) string {
	if replacement, ok := d.Lookup(TagRedact); ok {
		return redaction(replacement)
	}
	if mt, ok := d.Lookup(TagMask); ok {
		return b.maskers[MaskType(mt)].Mask(text)
	}
	if _, ok := d.Lookup(TagDecrypt); ok {
		return secretMask
	}
	return text
}

// Bind creates a Binder for T, initializes it and binds values.
func Bind[T any](values map[string]any, opts ...Option) (*T, Result, error) {
	b := NewBinder[T](opts...)
	if err := b.Init(); err != nil {
		return nil, Result{}, err
	}
	res := b.PutAll(values)
	return b.Object(), res, nil
}
