// Package config loads the two inputs of a report run: the JSON outline
// describing the section tree, and the YAML connection profile describing how
// to reach the appliance.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Section is one node of the declarative report outline, as written in the
// outline file. It is decoded verbatim; semantic validation (formatter names,
// path wildcards) happens when the tree is compiled by the report package.
type Section struct {
	Enabled    bool      `json:"enabled"`
	Title      string    `json:"title"`
	Paragraph  string    `json:"paragraph,omitempty"`
	Method     string    `json:"method,omitempty"`
	Fields     []string  `json:"fields,omitempty"`
	Postfilter bool      `json:"postfilter,omitempty"`
	Formatter  string    `json:"formatter,omitempty"`
	Sections   []Section `json:"sections,omitempty"`

	// Version is only meaningful on the root node and is emitted once at
	// the very top of the document.
	Version string `json:"_version,omitempty"`
}

// LoadOutline reads and decodes the outline file. A missing or malformed file
// is a fatal startup condition for the caller; there is no default outline.
func LoadOutline(path string) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline %s: %w", path, err)
	}
	var root Section
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing outline %s: %w", path, err)
	}
	return &root, nil
}
