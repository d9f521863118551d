// Package msgpack provides a MessagePack configuration source.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/tether"
)

// msgpackSource implements tether.Source for MessagePack.
type msgpackSource struct{}

// New returns a MessagePack source.
func New() tether.Source {
	return &msgpackSource{}
}

// ContentType returns the MIME type for MessagePack.
func (s *msgpackSource) ContentType() string {
	return "application/msgpack"
}

// Decode parses a MessagePack map and flattens it into dotted keys.
func (s *msgpackSource) Decode(data []byte) ([]tether.Pair, error) {
	var doc map[string]any
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return tether.Flatten(doc), nil
}
