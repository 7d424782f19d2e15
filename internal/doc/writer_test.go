package doc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, events ...Event) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, ev := range events {
		require.NoError(t, w.Emit(ev))
	}
	return buf.String()
}

func TestWriter_Headings(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name:     "title underlined with equals",
			event:    Title("Acceptance Report"),
			expected: "Acceptance Report\n=================\n\n",
		},
		{
			name:     "section heading underlined with dashes",
			event:    SectionHeading("Storage"),
			expected: "Storage\n-------\n\n",
		},
		{
			name:     "sub heading level zero",
			event:    SubHeading(0, "Pools"),
			expected: "### Pools ###\n\n",
		},
		{
			name:     "sub heading level two",
			event:    SubHeading(2, "Disks"),
			expected: "##### Disks #####\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.event))
		})
	}
}

func TestWriter_Labels(t *testing.T) {
	assert.Equal(t, "**node-a**\n\n", render(t, HostnameLabel("node-a")))
	assert.Equal(t, "*rev 4.2*\n\n", render(t, VersionLabel("rev 4.2")))
	assert.Equal(t, "`api: storage/pools`\n\n", render(t, Command("storage/pools")))
}

func TestWriter_Preformatted(t *testing.T) {
	out := render(t, Preformatted([]string{"tank  ONLINE", "  c0t0d0  ONLINE"}))
	assert.Equal(t, "```\ntank  ONLINE\n  c0t0d0  ONLINE\n```\n\n", out)
}

func TestWriter_TableAlignment(t *testing.T) {
	out := render(t, Table([][]string{
		{"Name", "Value"},
		{"poolName", "tank"},
		{"sz", "12"},
	}))

	expected := "Name      Value\n" +
		"--------  -----\n" +
		"poolName  tank\n" +
		"sz        12\n\n"
	assert.Equal(t, expected, out)
}

func TestWriter_TableNeverTruncates(t *testing.T) {
	long := "a-very-long-cell-value-that-must-survive-intact"
	out := render(t, Table([][]string{{"H"}, {long}}))
	assert.Contains(t, out, long)
}

func TestWriter_EmptyTableRows(t *testing.T) {
	assert.Empty(t, render(t, Table(nil)))
}

func TestWriter_TableRaggedRows(t *testing.T) {
	out := render(t, Table([][]string{
		{"Name", "Value"},
		{"poolName", "tank", "extra"},
		{"sz"},
	}))

	expected := "Name      Value\n" +
		"--------  -----\n" +
		"poolName  tank   extra\n" +
		"sz\n\n"
	assert.Equal(t, expected, out, "cells beyond the header column count render unpadded instead of panicking")
}
