package doc

// Recorder is a Sink that captures every emitted event in order. Tests use it
// to assert on the event sequence a traversal produced.
type Recorder struct {
	Events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Kinds returns just the event kinds, in emission order.
func (r *Recorder) Kinds() []EventKind {
	kinds := make([]EventKind, len(r.Events))
	for i, ev := range r.Events {
		kinds[i] = ev.Kind
	}
	return kinds
}
