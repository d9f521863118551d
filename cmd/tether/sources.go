package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zoobzio/tether"
	"github.com/zoobzio/tether/bson"
	"github.com/zoobzio/tether/hcl"
	"github.com/zoobzio/tether/json"
	"github.com/zoobzio/tether/msgpack"
	"github.com/zoobzio/tether/properties"
	"github.com/zoobzio/tether/viper"
	"github.com/zoobzio/tether/xml"
	"github.com/zoobzio/tether/yaml"
)

// sourceFor picks the source for a file from format, or from the file
// extension when format is empty.
func sourceFor(path, format string) (tether.Source, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "properties", "props":
		return properties.New(), nil
	case "json":
		return json.New(), nil
	case "yaml", "yml":
		return yaml.New(), nil
	case "msgpack", "mpk":
		return msgpack.New(), nil
	case "bson":
		return bson.New(), nil
	case "xml":
		return xml.New(), nil
	case "hcl":
		return hcl.New(filepath.Base(path)), nil
	}
	if viper.Supported(format) {
		return viper.New(format), nil
	}
	return nil, fmt.Errorf("no source for format %q", format)
}
