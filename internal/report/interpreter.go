package report

import (
	"context"
	"log/slog"

	"storedoc/internal/doc"
)

// Interpreter walks a compiled outline depth-first and emits the document.
// Traversal is strictly sequential and deterministic: sections render in
// declared order, targets in list order, and the output is exactly the
// traversal order.
type Interpreter struct {
	log     *slog.Logger
	exec    *Executor
	targets []Target
}

// NewInterpreter builds an interpreter rendering for the given targets, in
// order. The first target is the local appliance; a discovered cluster
// partner follows it.
func NewInterpreter(log *slog.Logger, exec *Executor, targets []Target) *Interpreter {
	return &Interpreter{log: log, exec: exec, targets: targets}
}

// Render evaluates one node at the given tree depth, emitting to sink.
//
// A disabled node is skipped together with its entire subtree: no events, no
// API calls, regardless of what its children declare. Heading markup is a
// pure function of depth. Any error aborts the traversal; nothing below the
// failure point is rendered.
func (in *Interpreter) Render(ctx context.Context, node *Node, depth int, sink doc.Sink) error {
	if !node.Enabled {
		in.log.Debug("section disabled, skipping subtree", "title", node.Title)
		return nil
	}

	if depth == 0 && node.Version != "" {
		if err := sink.Emit(doc.VersionLabel(node.Version)); err != nil {
			return err
		}
	}

	if err := sink.Emit(headingFor(depth, node.Title)); err != nil {
		return err
	}
	if node.Paragraph != "" {
		if err := sink.Emit(doc.Paragraph(node.Paragraph)); err != nil {
			return err
		}
	}

	if node.Method != nil {
		if err := sink.Emit(doc.Command(node.Method.String())); err != nil {
			return err
		}
		for _, t := range in.targets {
			if err := sink.Emit(doc.HostnameLabel(t.Hostname)); err != nil {
				return err
			}
			if err := in.exec.Execute(ctx, t, node, sink); err != nil {
				return err
			}
		}
	}

	for _, child := range node.Children {
		if err := in.Render(ctx, child, depth+1, sink); err != nil {
			return err
		}
	}
	return nil
}

// headingFor maps tree depth to heading markup: depth 0 is the document
// title, depth 1 a section heading, and deeper nodes get sub-headings whose
// nesting marker count is depth-2.
func headingFor(depth int, title string) doc.Event {
	switch depth {
	case 0:
		return doc.Title(title)
	case 1:
		return doc.SectionHeading(title)
	default:
		return doc.SubHeading(depth-2, title)
	}
}
