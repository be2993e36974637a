package panel

// accumulator collects streamed message text keyed by message id. Completed
// uncancelled streams are removed; cancelled streams keep their partial text
// so it can be restored as final content later.
type accumulator struct {
	buffers map[string]string
}

func newAccumulator() *accumulator {
	return &accumulator{buffers: make(map[string]string)}
}

// Has reports whether the id has an open (or cancelled-retained) buffer.
func (a *accumulator) Has(messageID string) bool {
	_, ok := a.buffers[messageID]
	return ok
}

// Init opens an empty buffer for the id if none exists. The buffer is created
// before any container so a fast first delta can never observe a container
// without tracking state.
func (a *accumulator) Init(messageID string) {
	if _, ok := a.buffers[messageID]; !ok {
		a.buffers[messageID] = ""
	}
}

// Append concatenates the delta and returns the full accumulated text.
func (a *accumulator) Append(messageID, delta string) string {
	full := a.buffers[messageID] + delta
	a.buffers[messageID] = full
	return full
}

// Content returns the accumulated text for the id.
func (a *accumulator) Content(messageID string) (string, bool) {
	s, ok := a.buffers[messageID]
	return s, ok
}

// Remove drops the buffer for a completed stream.
func (a *accumulator) Remove(messageID string) {
	delete(a.buffers, messageID)
}

// Clear drops every buffer.
func (a *accumulator) Clear() {
	a.buffers = make(map[string]string)
}

// Open returns the number of buffers still held.
func (a *accumulator) Open() int { return len(a.buffers) }
