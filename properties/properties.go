// Package properties provides a Java-style .properties configuration source.
package properties

import (
	"github.com/magiconair/properties"

	"github.com/zoobzio/tether"
)

// propertiesSource implements tether.Source for .properties files.
type propertiesSource struct {
	expand bool
}

// Option configures the properties source.
type Option func(*propertiesSource)

// WithExpansion enables ${key} references between properties.
func WithExpansion() Option {
	return func(s *propertiesSource) {
		s.expand = true
	}
}

// New returns a .properties source. Keys keep file order.
func New(opts ...Option) tether.Source {
	s := &propertiesSource{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType returns the MIME type for .properties files.
func (s *propertiesSource) ContentType() string {
	return "text/x-java-properties"
}

// Decode parses UTF-8 properties text.
func (s *propertiesSource) Decode(data []byte) ([]tether.Pair, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: !s.expand}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	keys := p.Keys()
	pairs := make([]tether.Pair, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		pairs = append(pairs, tether.Pair{Key: k, Value: v})
	}
	return pairs, nil
}
