// Package doc defines the emission events that make up a report document and
// the sinks that consume them.
//
// The report core never writes text directly. It produces a sequence of Event
// values (headings, labels, paragraphs, tables) and hands them to a Sink. The
// Writer sink renders the events as a Markdown-flavored text stream; the
// Recorder sink captures them for tests. Keeping traversal and I/O apart this
// way lets tests assert on the event sequence without touching the filesystem.
package doc
