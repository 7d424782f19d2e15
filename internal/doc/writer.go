package doc

import (
	"fmt"
	"io"
	"strings"
)

// Writer renders document events as a Markdown-flavored text stream.
//
// Headings follow depth: the title is underlined with '=', section headings
// with '-', and nested sub-headings use closed ATX markup where the number of
// extra '#' markers on each side grows with nesting depth.
type Writer struct {
	out io.Writer
	err error
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Emit renders one event. The first error encountered is sticky: subsequent
// calls return it without writing.
func (w *Writer) Emit(ev Event) error {
	if w.err != nil {
		return w.err
	}
	switch ev.Kind {
	case KindTitle:
		w.line(ev.Text)
		w.line(strings.Repeat("=", len(ev.Text)))
		w.line("")
	case KindSectionHeading:
		w.line(ev.Text)
		w.line(strings.Repeat("-", len(ev.Text)))
		w.line("")
	case KindSubHeading:
		marker := "###" + strings.Repeat("#", ev.Level)
		w.line(fmt.Sprintf("%s %s %s", marker, ev.Text, marker))
		w.line("")
	case KindHostnameLabel:
		w.line(fmt.Sprintf("**%s**", ev.Text))
		w.line("")
	case KindVersionLabel:
		w.line(fmt.Sprintf("*%s*", ev.Text))
		w.line("")
	case KindCommand:
		w.line(fmt.Sprintf("`api: %s`", ev.Text))
		w.line("")
	case KindParagraph:
		w.line(ev.Text)
		w.line("")
	case KindPreformatted:
		w.line("```")
		for _, l := range ev.Lines {
			w.line(l)
		}
		w.line("```")
		w.line("")
	case KindTable:
		w.table(ev.Rows)
	case KindBlank:
		w.line("")
	default:
		w.err = fmt.Errorf("unknown document event kind %d", ev.Kind)
	}
	return w.err
}

func (w *Writer) line(s string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.out, s)
}

// table renders rows with every cell left-justified to its column's maximum
// width and a dash rule between header and body. Columns are never truncated.
func (w *Writer) table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	w.line(formatRow(rows[0], widths))
	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}
	w.line(formatRow(rule, widths))
	for _, row := range rows[1:] {
		w.line(formatRow(row, widths))
	}
	w.line("")
}

func formatRow(row []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range row {
		if i > 0 {
			sb.WriteString("  ")
		}
		// Cells beyond the header's column count have no width to pad to.
		if i == len(row)-1 || i >= len(widths) {
			sb.WriteString(cell)
			continue
		}
		sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
	}
	return strings.TrimRight(sb.String(), " ")
}
