// Package hcl provides an HCL configuration source.
//
// Attributes become keys, blocks contribute their type and labels as path
// segments:
//
//	port = 8080
//	database "primary" {
//	  host = "db.internal"
//	}
//
// yields port=8080 and database.primary.host=db.internal. Expressions are
// evaluated without variables or functions.
package hcl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/zoobzio/tether"
)

var errUnsupportedBody = errors.New("unsupported HCL body")

// hclSource implements tether.Source for HCL native syntax.
type hclSource struct {
	filename string
}

// New returns an HCL source. filename only appears in diagnostics.
func New(filename string) tether.Source {
	if filename == "" {
		filename = "config.hcl"
	}
	return &hclSource{filename: filename}
}

// ContentType returns the MIME type for HCL.
func (s *hclSource) ContentType() string {
	return "application/hcl"
}

// Decode parses HCL and flattens attributes and blocks. Attributes of a body
// come first, sorted by name, followed by its blocks in file order.
func (s *hclSource) Decode(data []byte) ([]tether.Pair, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, s.filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", s.filename, diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errUnsupportedBody
	}
	var pairs []tether.Pair
	if err := walkBody("", body, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func walkBody(prefix string, body *hclsyntax.Body, pairs *[]tether.Pair) error {
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := body.Attributes[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("attribute %s: %s", name, diags.Error())
		}
		if err := walkValue(join(prefix, name), val, pairs); err != nil {
			return err
		}
	}

	for _, block := range body.Blocks {
		key := join(prefix, block.Type)
		for _, label := range block.Labels {
			key = join(key, label)
		}
		if err := walkBody(key, block.Body, pairs); err != nil {
			return err
		}
	}
	return nil
}

// walkValue converts a cty value, expanding collections into indexed or
// named keys.
func walkValue(key string, v cty.Value, pairs *[]tether.Pair) error {
	if v.IsNull() || !v.IsKnown() {
		*pairs = append(*pairs, tether.Pair{Key: key})
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		*pairs = append(*pairs, tether.Pair{Key: key, Value: v.AsString()})
	case ty == cty.Number:
		*pairs = append(*pairs, tether.Pair{Key: key, Value: v.AsBigFloat().Text('f', -1)})
	case ty == cty.Bool:
		*pairs = append(*pairs, tether.Pair{Key: key, Value: v.True()})
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		i := 0
		for it := v.ElementIterator(); it.Next(); i++ {
			_, elem := it.Element()
			if err := walkValue(join(key, strconv.Itoa(i)), elem, pairs); err != nil {
				return err
			}
		}
	case ty.IsObjectType() || ty.IsMapType():
		for it := v.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			if err := walkValue(join(key, k.AsString()), elem, pairs); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("attribute %s: unsupported type %s", key, ty.FriendlyName())
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + tether.KeySeparator + key
}
