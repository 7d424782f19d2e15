package report

import (
	"fmt"

	"storedoc/internal/config"
)

// Node is a compiled outline section: formatter names resolved to kinds, API
// paths parsed into templates, shape invariants checked. Compiling up front
// means a bad outline is rejected before anything is written or queried.
type Node struct {
	Enabled    bool
	Title      string
	Paragraph  string
	Method     *PathTemplate
	Fields     []string
	Postfilter bool
	Formatter  FormatterKind
	Children   []*Node

	// Version is only set on the root node.
	Version string
}

// Compile validates a loaded outline and builds the render tree. Errors name
// the offending section.
func Compile(root *config.Section) (*Node, error) {
	return compileSection(root, root.Version)
}

func compileSection(s *config.Section, version string) (*Node, error) {
	node := &Node{
		Enabled:    s.Enabled,
		Title:      s.Title,
		Paragraph:  s.Paragraph,
		Fields:     s.Fields,
		Postfilter: s.Postfilter,
		Version:    version,
	}

	if s.Method != "" {
		if s.Formatter == "" {
			return nil, fmt.Errorf("section %q: method %q requires a formatter", s.Title, s.Method)
		}
		tmpl, err := ParsePathTemplate(s.Method)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		node.Method = &tmpl
	}
	if s.Formatter != "" {
		kind, err := ParseFormatterKind(s.Formatter)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		node.Formatter = kind
	}

	for i := range s.Sections {
		child, err := compileSection(&s.Sections[i], "")
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
