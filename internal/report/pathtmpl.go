package report

import (
	"fmt"
	"strings"
)

// PathTemplate is an API path that may carry at most one wildcard slot of the
// form {name}. Parsing up front replaces ad-hoc string substitution with a
// typed template that is validated once, at outline compile time.
type PathTemplate struct {
	raw    string
	prefix string
	slot   string
	suffix string
}

// ParsePathTemplate validates and splits an API path. At most one wildcard
// slot is allowed and its name must be one of the known wildcards.
func ParsePathTemplate(path string) (PathTemplate, error) {
	open := strings.Index(path, "{")
	if open == -1 {
		if strings.Contains(path, "}") {
			return PathTemplate{}, fmt.Errorf("path %q: unmatched '}'", path)
		}
		return PathTemplate{raw: path}, nil
	}

	end := strings.Index(path[open:], "}")
	if end == -1 {
		return PathTemplate{}, fmt.Errorf("path %q: unmatched '{'", path)
	}
	end += open

	slot := path[open+1 : end]
	suffix := path[end+1:]
	if strings.ContainsAny(suffix, "{}") {
		return PathTemplate{}, fmt.Errorf("path %q: only one wildcard slot is supported", path)
	}
	if !KnownWildcard(slot) {
		return PathTemplate{}, fmt.Errorf("path %q: unknown wildcard %q", path, slot)
	}

	return PathTemplate{
		raw:    path,
		prefix: path[:open],
		slot:   slot,
		suffix: suffix,
	}, nil
}

// HasWildcard reports whether the template carries a slot.
func (p PathTemplate) HasWildcard() bool { return p.slot != "" }

// Slot returns the wildcard name, empty when there is none.
func (p PathTemplate) Slot() string { return p.slot }

// Instantiate substitutes a concrete (already path-escaped) value into the
// slot. Calling it on a template without a wildcard returns the path as-is.
func (p PathTemplate) Instantiate(value string) string {
	if p.slot == "" {
		return p.raw
	}
	return p.prefix + value + p.suffix
}

// String returns the literal path as written in the outline.
func (p PathTemplate) String() string { return p.raw }
