package tether

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Pair is one key/value entry handed to a Binder.
type Pair struct {
	Key   string
	Value any
}

// Source decodes raw configuration bytes into ordered key/value pairs.
// Implementations live in sub-packages (properties, json, yaml, ...).
type Source interface {
	// ContentType returns the MIME type this source reads.
	ContentType() string

	// Decode parses data into pairs in the order they should be applied.
	Decode(data []byte) ([]Pair, error)
}

// KeySeparator joins the path segments of nested documents.
const KeySeparator = "."

// Flatten turns a decoded document into dotted-key pairs: nested maps
// contribute their keys as path segments and lists contribute their indices
// (hosts.0, hosts.1). Map keys are visited in lexical order. A document that
// is not a map yields no pairs.
func Flatten(doc any) []Pair {
	rv := reflect.ValueOf(doc)
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	var pairs []Pair
	flattenValue("", rv, &pairs)
	return pairs
}

func flattenValue(prefix string, rv reflect.Value, pairs *[]Pair) {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			*pairs = append(*pairs, Pair{Key: prefix})
			return
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		*pairs = append(*pairs, Pair{Key: prefix})
		return
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		values := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = iter.Value()
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenValue(joinKey(prefix, k), values[k], pairs)
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			*pairs = append(*pairs, Pair{Key: prefix, Value: rv.Interface()})
			return
		}
		for i := 0; i < rv.Len(); i++ {
			flattenValue(joinKey(prefix, strconv.Itoa(i)), rv.Index(i), pairs)
		}
	default:
		*pairs = append(*pairs, Pair{Key: prefix, Value: rv.Interface()})
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + KeySeparator + key
}

// PairsOf returns the entries of m as pairs in lexical key order.
func PairsOf[V any](m map[string]V) []Pair {
	pairs := make([]Pair, 0, len(m))
	for _, k := range sortedKeys(m) {
		pairs = append(pairs, Pair{Key: k, Value: m[k]})
	}
	return pairs
}
