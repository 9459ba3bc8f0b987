package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a concrete document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// default to JSON, the interchange format of existing bank files.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q: must be json or yaml", name)
	}
}

// Marshal renders doc in the given syntax.
func Marshal(format Format, doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// Unmarshal parses data in the given syntax. Syntax errors and field type
// mismatches are reported as *FormatError carrying the record index.
func Unmarshal(format Format, data []byte) (Document, error) {
	switch format {
	case FormatJSON:
		return unmarshalJSON(data)
	case FormatYAML:
		return unmarshalYAML(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

func unmarshalJSON(data []byte) (Document, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Record: -1, Message: "document is not a list of records", Err: err}
	}

	doc := make(Document, 0, len(raw))
	for i, r := range raw {
		var rec Record
		if err := json.Unmarshal(r, &rec); err != nil {
			var ferr *FormatError
			if errors.As(err, &ferr) {
				ferr.Record = i
				return nil, ferr
			}
			return nil, &FormatError{Record: i, Message: "malformed record", Err: err}
		}
		doc = append(doc, rec)
	}
	return doc, nil
}

func unmarshalYAML(data []byte) (Document, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, &FormatError{Record: -1, Message: "document is not a list of records", Err: err}
	}

	doc := make(Document, 0, len(nodes))
	for i := range nodes {
		if nodes[i].Kind != yaml.MappingNode {
			return nil, &FormatError{Record: i, Message: "record is not a mapping"}
		}
		var rec Record
		if err := nodes[i].Decode(&rec); err != nil {
			return nil, &FormatError{Record: i, Message: "malformed record", Err: err}
		}
		doc = append(doc, rec)
	}
	return doc, nil
}
