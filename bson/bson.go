// Package bson provides a BSON configuration source.
package bson

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoobzio/tether"
)

// bsonSource implements tether.Source for BSON.
type bsonSource struct{}

// New returns a BSON source.
func New() tether.Source {
	return &bsonSource{}
}

// ContentType returns the MIME type for BSON.
func (s *bsonSource) ContentType() string {
	return "application/bson"
}

// Decode parses a BSON document and flattens it into dotted keys in
// document order.
func (s *bsonSource) Decode(data []byte) ([]tether.Pair, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var pairs []tether.Pair
	walk("", doc, &pairs)
	return pairs, nil
}

func walk(prefix string, v any, pairs *[]tether.Pair) {
	switch val := v.(type) {
	case bson.D:
		for _, e := range val {
			walk(join(prefix, e.Key), e.Value, pairs)
		}
	case bson.M:
		for _, p := range tether.PairsOf(val) {
			walk(join(prefix, p.Key), p.Value, pairs)
		}
	case bson.A:
		for i, elem := range val {
			walk(join(prefix, strconv.Itoa(i)), elem, pairs)
		}
	case primitive.DateTime:
		*pairs = append(*pairs, tether.Pair{Key: prefix, Value: val.Time()})
	case primitive.ObjectID:
		*pairs = append(*pairs, tether.Pair{Key: prefix, Value: val.Hex()})
	default:
		*pairs = append(*pairs, tether.Pair{Key: prefix, Value: val})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + tether.KeySeparator + key
}
