// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parsed is the result of splitting a document into header and body.
type Parsed struct {
	// Fields holds the decoded header mapping.
	Fields map[string]interface{}
	// Body is the content below the header, leading newlines trimmed.
	Body string
}

// Parse splits a document into its front-matter header and body and decodes
// the header. A document without a leading "---" line has no header; Fields
// is nil and the whole content is body.
func Parse(data []byte) (*Parsed, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return &Parsed{Body: string(data)}, nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return &Parsed{Body: string(data)}, nil
	}

	block := rest[:idx]
	after := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(after), "\n\r")

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, fmt.Errorf("decoding front matter: %w", err)
	}
	fields, err := mappingFields(&doc)
	if err != nil {
		return nil, fmt.Errorf("decoding front matter: %w", err)
	}
	return &Parsed{Fields: fields, Body: body}, nil
}

// mappingFields decodes the header's top-level mapping. The header's date
// field is a string by contract, so timestamp-shaped scalars keep their
// literal text instead of widening to time.Time.
func mappingFields(doc *yaml.Node) (map[string]interface{}, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is not a mapping")
	}
	fields := make(map[string]interface{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		value, err := decodeValue(root.Content[i+1])
		if err != nil {
			return nil, err
		}
		fields[root.Content[i].Value] = value
	}
	return fields, nil
}

func decodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!timestamp" {
			return n.Value, nil
		}
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := decodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	}
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
