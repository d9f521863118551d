// Package xml provides an XML configuration source.
//
// The root element is dropped, nested elements become dotted keys and
// attributes become keys under their element. Repeated sibling elements are
// indexed:
//
//	<config>
//	  <db port="5432"><host>a</host><host>b</host></db>
//	</config>
//
// yields db.port=5432, db.host.0=a, db.host.1=b.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/zoobzio/tether"
)

var errNoRoot = errors.New("document has no root element")

// xmlSource implements tether.Source for XML.
type xmlSource struct{}

// New returns an XML source.
func New() tether.Source {
	return &xmlSource{}
}

// ContentType returns the MIME type for XML.
func (s *xmlSource) ContentType() string {
	return "application/xml"
}

type node struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*node
}

// Decode parses an XML document and flattens it in document order.
func (s *xmlSource) Decode(data []byte) ([]tether.Pair, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}
	var pairs []tether.Pair
	for _, a := range root.attrs {
		pairs = append(pairs, tether.Pair{Key: a.Name.Local, Value: a.Value})
	}
	flattenChildren("", root, &pairs)
	return pairs, nil
}

func parse(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errNoRoot
	}
	return root, nil
}

func flattenChildren(prefix string, n *node, pairs *[]tether.Pair) {
	counts := make(map[string]int, len(n.children))
	for _, c := range n.children {
		counts[c.name]++
	}
	seen := make(map[string]int, len(counts))
	for _, c := range n.children {
		key := join(prefix, c.name)
		if counts[c.name] > 1 {
			key = join(key, strconv.Itoa(seen[c.name]))
			seen[c.name]++
		}
		flattenNode(key, c, pairs)
	}
}

func flattenNode(key string, n *node, pairs *[]tether.Pair) {
	for _, a := range n.attrs {
		*pairs = append(*pairs, tether.Pair{Key: join(key, a.Name.Local), Value: a.Value})
	}
	if len(n.children) > 0 {
		flattenChildren(key, n, pairs)
		return
	}
	*pairs = append(*pairs, tether.Pair{Key: key, Value: strings.TrimSpace(n.text.String())})
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + tether.KeySeparator + key
}
