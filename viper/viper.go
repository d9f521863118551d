// Package viper provides a configuration source backed by spf13/viper, which
// reads toml, ini, env (dotenv), hcl, json, yaml and java properties text.
package viper

import (
	"bytes"
	"sort"

	"github.com/spf13/viper"

	"github.com/zoobzio/tether"
)

// viperSource implements tether.Source for one viper config type.
type viperSource struct {
	configType string
}

// New returns a source for configType, one of viper.SupportedExts
// ("toml", "ini", "env", ...).
func New(configType string) tether.Source {
	return &viperSource{configType: configType}
}

// Supported reports whether viper can read configType.
func Supported(configType string) bool {
	for _, ext := range viper.SupportedExts {
		if ext == configType {
			return true
		}
	}
	return false
}

var contentTypes = map[string]string{
	"toml":       "application/toml",
	"ini":        "text/x-ini",
	"env":        "text/x-dotenv",
	"dotenv":     "text/x-dotenv",
	"json":       "application/json",
	"yaml":       "application/yaml",
	"yml":        "application/yaml",
	"hcl":        "application/hcl",
	"tfvars":     "application/hcl",
	"properties": "text/x-java-properties",
	"props":      "text/x-java-properties",
	"prop":       "text/x-java-properties",
}

// ContentType returns the MIME type for the configured format.
func (s *viperSource) ContentType() string {
	if ct, ok := contentTypes[s.configType]; ok {
		return ct
	}
	return "text/x-" + s.configType
}

// Decode reads data with a private viper instance. Keys are viper's
// lower-cased dotted keys in lexical order.
func (s *viperSource) Decode(data []byte) ([]tether.Pair, error) {
	v := viper.New()
	v.SetConfigType(s.configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	keys := v.AllKeys()
	sort.Strings(keys)
	var pairs []tether.Pair
	for _, k := range keys {
		val := v.Get(k)
		if _, nested := val.([]any); nested {
			pairs = append(pairs, tether.Flatten(map[string]any{k: val})...)
			continue
		}
		pairs = append(pairs, tether.Pair{Key: k, Value: val})
	}
	return pairs, nil
}
