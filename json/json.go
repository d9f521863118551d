// Package json provides a JSON configuration source.
package json

import (
	"errors"

	"github.com/goccy/go-json"

	"github.com/zoobzio/tether"
)

// errNotObject is returned for documents whose root is not an object.
var errNotObject = errors.New("document root must be an object")

// jsonSource implements tether.Source for JSON.
type jsonSource struct{}

// New returns a JSON source.
func New() tether.Source {
	return &jsonSource{}
}

// ContentType returns the MIME type for JSON.
func (s *jsonSource) ContentType() string {
	return "application/json"
}

// Decode parses a JSON object and flattens it into dotted keys.
func (s *jsonSource) Decode(data []byte) ([]tether.Pair, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return tether.Flatten(m), nil
}
