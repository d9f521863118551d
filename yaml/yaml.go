// Package yaml provides a YAML configuration source.
package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/tether"
)

// yamlSource implements tether.Source for YAML.
type yamlSource struct{}

// New returns a YAML source.
func New() tether.Source {
	return &yamlSource{}
}

// ContentType returns the MIME type for YAML.
func (s *yamlSource) ContentType() string {
	return "application/yaml"
}

// Decode parses a YAML mapping and flattens it into dotted keys. An empty
// document yields no pairs.
func (s *yamlSource) Decode(data []byte) ([]tether.Pair, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return tether.Flatten(doc), nil
}
