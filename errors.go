package tether

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNilObject indicates InitWith was handed a nil instance.
	ErrNilObject = errors.New("nil object")

	// ErrNotStruct indicates the target type is not a struct.
	ErrNotStruct = errors.New("target must be a struct")

	// ErrNotInitialized indicates a Put before Init or InitWith.
	ErrNotInitialized = errors.New("binder not initialized")

	// ErrConstruct indicates the target instance could not be constructed.
	ErrConstruct = errors.New("construct failed")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingDecrypter indicates a decrypt tag names an algorithm with no registered decrypter.
	ErrMissingDecrypter = errors.New("missing decrypter")

	// ErrMissingHasher indicates a hash tag names an algorithm with no registered hasher.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrMissingMasker indicates a mask tag names a type with no registered masker.
	ErrMissingMasker = errors.New("missing masker")

	// ErrNumberFormat indicates non-numeric text bound to a numeric slot.
	ErrNumberFormat = errors.New("invalid number format")

	// ErrUnparseableDate indicates text matched none of the configured date patterns.
	ErrUnparseableDate = errors.New("unparseable date")

	// ErrInvalidPattern indicates a date pattern with an unsupported token.
	ErrInvalidPattern = errors.New("invalid date pattern")

	// ErrTypeNotFound indicates a type name that the type catalog cannot resolve.
	ErrTypeNotFound = errors.New("type not found")

	// ErrEmptyValue indicates empty text bound to a slot that needs at least one character.
	ErrEmptyValue = errors.New("empty value")

	// ErrNotAssignable indicates a converted value whose type does not fit the slot.
	ErrNotAssignable = errors.New("value not assignable")

	// ErrSetter indicates a setter method returned an error or panicked.
	ErrSetter = errors.New("setter failed")

	// ErrTransform indicates a raw value could not be converted to the slot's type.
	ErrTransform = errors.New("transform failed")

	// ErrDecrypt indicates decryption of a property value failed.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrHash indicates hashing of a property value failed.
	ErrHash = errors.New("hash failed")

	// ErrDecode indicates a source failed to decode its input.
	ErrDecode = errors.New("decode failed")
)

// ConfigError represents a structural or configuration problem found while
// preparing a binder. It wraps a sentinel error with the field and algorithm
// involved.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrInvalidTag, ErrMissingDecrypter, ...)
	Field     string // Field or method that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// BindError represents a failure to convert or assign a single property.
type BindError struct {
	Err   error  // Underlying sentinel error (ErrNumberFormat, ErrSetter, ...)
	Key   string // Property key being bound
	Value any    // Raw value as handed to Put
	Op    string // Step that failed: decrypt, transform, hash, assign
	Cause error  // Original error from the failing step
}

func (e *BindError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s key %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s key %s: %s", e.Op, e.Key, e.Err.Error())
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches
// ErrTransform as well as the ErrNumberFormat underneath it.
func (e *BindError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// SourceError represents a failure to decode a key/value source.
type SourceError struct {
	Err         error  // Underlying sentinel error (ErrDecode)
	ContentType string // Content type of the failing source
	Cause       error  // Original error from the decoder
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for structural and configuration failures.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

// newBindError creates a BindError for a per-key failure.
func newBindError(sentinel error, op, key string, value any, cause error) error {
	return &BindError{
		Err:   sentinel,
		Key:   key,
		Value: value,
		Op:    op,
		Cause: cause,
	}
}

// newSourceError creates a SourceError for decode failures.
func newSourceError(contentType string, cause error) error {
	return &SourceError{
		Err:         ErrDecode,
		ContentType: contentType,
		Cause:       cause,
	}
}
