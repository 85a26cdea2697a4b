package deck

// DefaultHistoryLimit bounds the undo and redo stacks.
const DefaultHistoryLimit = 50

// History is a bounded two-stack undo/redo over deck snapshots.
// Snapshots are deep copies captured before a mutation; both stacks
// evict their oldest element once the bound is exceeded, never
// rejecting a push. History is not safe for concurrent use on its own;
// Store serializes access to it.
type History struct {
	limit int
	undo  []*Deck
	redo  []*Deck
}

// NewHistory creates a history with the given snapshot bound.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records a pre-mutation snapshot and clears the redo stack,
// since the mutation it precedes invalidates any redoable future.
func (h *History) Push(snapshot *Deck) {
	h.undo = pushBounded(h.undo, snapshot, h.limit)
	h.redo = h.redo[:0]
}

// Undo pops the most recent snapshot, filing the current deck on the
// redo stack. Returns nil when there is nothing to undo.
func (h *History) Undo(current *Deck) *Deck {
	if len(h.undo) == 0 {
		return nil
	}
	snapshot := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = pushBounded(h.redo, current, h.limit)
	return snapshot
}

// Redo pops the most recently undone state, filing the current deck
// back on the undo stack. Returns nil when there is nothing to redo.
func (h *History) Redo(current *Deck) *Deck {
	if len(h.redo) == 0 {
		return nil
	}
	snapshot := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = pushBounded(h.undo, current, h.limit)
	return snapshot
}

// UndoDepth returns the number of undoable snapshots.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redoable snapshots.
func (h *History) RedoDepth() int { return len(h.redo) }

// pushBounded appends to the stack, evicting the oldest element when
// the bound is exceeded.
func pushBounded(stack []*Deck, snapshot *Deck, limit int) []*Deck {
	stack = append(stack, snapshot)
	if len(stack) > limit {
		copy(stack, stack[1:])
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]
	}
	return stack
}
