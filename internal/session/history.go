package session

// operation is one recorded field change: enough to re-apply either side
// of the edit through the store.
type operation struct {
	RecordID int64
	Column   string
	Old      any
	New      any
}

// history is a linear, pointer-indexed operation log with a fixed cap.
// Entries [0, ptr) are undoable; entries [ptr, len) are redoable.
type history struct {
	ops   []operation
	ptr   int
	limit int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// record appends an operation at the pointer, discarding any redo future
// and evicting the oldest entry once the cap is exceeded.
func (h *history) record(op operation) {
	h.ops = append(h.ops[:h.ptr], op)
	if len(h.ops) > h.limit {
		h.ops = h.ops[len(h.ops)-h.limit:]
	}
	h.ptr = len(h.ops)
}

// undo steps the pointer back and returns the operation to revert.
func (h *history) undo() (operation, bool) {
	if h.ptr == 0 {
		return operation{}, false
	}
	h.ptr--
	return h.ops[h.ptr], true
}

// cancelUndo restores the pointer after a failed revert write; the
// operation is not considered undone.
func (h *history) cancelUndo() { h.ptr++ }

// redo returns the operation to re-apply and advances the pointer.
func (h *history) redo() (operation, bool) {
	if h.ptr == len(h.ops) {
		return operation{}, false
	}
	op := h.ops[h.ptr]
	h.ptr++
	return op, true
}

// cancelRedo restores the pointer after a failed re-apply write.
func (h *history) cancelRedo() { h.ptr-- }
