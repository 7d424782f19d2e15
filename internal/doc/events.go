package doc

// EventKind discriminates the Event variants a Sink can receive.
type EventKind int

const (
	// KindTitle is the single top-level document title.
	KindTitle EventKind = iota
	// KindSectionHeading is a first-level section heading.
	KindSectionHeading
	// KindSubHeading is a nested heading; Level counts the nesting markers
	// added on each side of the title.
	KindSubHeading
	// KindHostnameLabel identifies which appliance the following output
	// was gathered from.
	KindHostnameLabel
	// KindVersionLabel is the free-form outline version emitted once at the
	// very top of the document.
	KindVersionLabel
	// KindCommand annotates the literal API path queried for a section.
	KindCommand
	// KindParagraph is static prose, rendered verbatim.
	KindParagraph
	// KindPreformatted is a block rendered without reflowing, one string
	// per line.
	KindPreformatted
	// KindTable is tabular data; Rows[0] is the header row.
	KindTable
	// KindBlank is a single separating blank line.
	KindBlank
)

// Event is one document emission. Exactly one payload field is meaningful per
// kind; the zero values of the others are ignored.
type Event struct {
	Kind  EventKind
	Text  string
	Level int
	Lines []string
	Rows  [][]string
}

// Sink consumes an ordered stream of document events.
type Sink interface {
	Emit(ev Event) error
}

// Title returns the document title event.
func Title(text string) Event { return Event{Kind: KindTitle, Text: text} }

// SectionHeading returns a first-level heading event.
func SectionHeading(text string) Event { return Event{Kind: KindSectionHeading, Text: text} }

// SubHeading returns a nested heading event with the given number of nesting
// markers on each side.
func SubHeading(level int, text string) Event {
	return Event{Kind: KindSubHeading, Level: level, Text: text}
}

// HostnameLabel returns a label naming the appliance the following output
// belongs to.
func HostnameLabel(host string) Event { return Event{Kind: KindHostnameLabel, Text: host} }

// VersionLabel returns the outline version event.
func VersionLabel(version string) Event { return Event{Kind: KindVersionLabel, Text: version} }

// Command returns an annotation naming the API path behind a section.
func Command(path string) Event { return Event{Kind: KindCommand, Text: path} }

// Paragraph returns a verbatim prose event.
func Paragraph(text string) Event { return Event{Kind: KindParagraph, Text: text} }

// Preformatted returns a block of lines rendered without reflowing.
func Preformatted(lines []string) Event { return Event{Kind: KindPreformatted, Lines: lines} }

// Table returns a table event; the first row is the header.
func Table(rows [][]string) Event { return Event{Kind: KindTable, Rows: rows} }

// Blank returns a separating blank line event.
func Blank() Event { return Event{Kind: KindBlank} }
