package session

import (
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Session is the edit history of one open image.
//
// It holds the current buffer, the baseline captured at load time, and the
// undo and redo stacks of earlier buffers (most recent last). A Session has
// no internal locking: it must be owned by a single goroutine.
type Session struct {
	current    *imaging.Buffer
	original   *imaging.Buffer
	sourcePath string
	dirty      bool

	undoStack []*imaging.Buffer
	redoStack []*imaging.Buffer

	// limit caps each stack; 0 means unbounded.
	limit int
}

// New creates an empty session. historyLimit caps the undo and redo stacks;
// zero or negative means unbounded.
func New(historyLimit int) *Session {
	if historyLimit < 0 {
		historyLimit = 0
	}
	return &Session{limit: historyLimit}
}

// Load replaces the current and original buffers with copies of buf,
// records path as the source, clears both stacks and the dirty flag.
func (s *Session) Load(buf *imaging.Buffer, path string) {
	s.current = buf.Clone()
	s.original = buf.Clone()
	s.sourcePath = path
	s.undoStack = nil
	s.redoStack = nil
	s.dirty = false
}

// SnapshotBeforeEdit pushes a copy of the current buffer onto the undo
// stack and clears the redo stack. It does nothing when no image is loaded.
//
// Callers invoke it once per user action, immediately before SetImage.
func (s *Session) SnapshotBeforeEdit() {
	if s.current == nil {
		return
	}
	s.undoStack = s.push(s.undoStack, s.current.Clone())
	s.redoStack = nil
}

// SetImage commits buf as the current buffer and marks the session dirty.
// The history stacks are left alone.
func (s *Session) SetImage(buf *imaging.Buffer) {
	s.current = buf
	s.dirty = true
}

// Undo restores the previous buffer. It returns false when no image is
// loaded or there is nothing to undo.
func (s *Session) Undo() bool {
	if s.current == nil || len(s.undoStack) == 0 {
		return false
	}
	s.redoStack = s.push(s.redoStack, s.current.Clone())
	s.current, s.undoStack = pop(s.undoStack)
	s.dirty = true
	return true
}

// Redo re-applies the most recently undone buffer. It returns false when no
// image is loaded or there is nothing to redo.
func (s *Session) Redo() bool {
	if s.current == nil || len(s.redoStack) == 0 {
		return false
	}
	s.undoStack = s.push(s.undoStack, s.current.Clone())
	s.current, s.redoStack = pop(s.redoStack)
	s.dirty = true
	return true
}

// MarkSaved records a successful save to path.
func (s *Session) MarkSaved(path string) {
	s.sourcePath = path
	s.dirty = false
}

// Current returns the buffer being edited, or nil.
func (s *Session) Current() *imaging.Buffer { return s.current }

// Original returns the buffer as it was loaded, or nil.
func (s *Session) Original() *imaging.Buffer { return s.original }

// SourcePath returns the path the image was loaded from or last saved to.
func (s *Session) SourcePath() string { return s.sourcePath }

// Dirty reports unsaved changes since the last load or save.
func (s *Session) Dirty() bool { return s.dirty }

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool { return s.current != nil }

// UndoDepth returns the number of undoable steps.
func (s *Session) UndoDepth() int { return len(s.undoStack) }

// RedoDepth returns the number of redoable steps.
func (s *Session) RedoDepth() int { return len(s.redoStack) }

// HistoryLimit returns the stack cap, 0 if unbounded.
func (s *Session) HistoryLimit() int { return s.limit }

// push appends buf, dropping the oldest entries beyond the limit.
func (s *Session) push(stack []*imaging.Buffer, buf *imaging.Buffer) []*imaging.Buffer {
	stack = append(stack, buf)
	if s.limit > 0 && len(stack) > s.limit {
		excess := len(stack) - s.limit
		// Clear dropped slots so the buffers can be collected.
		for i := 0; i < excess; i++ {
			stack[i] = nil
		}
		stack = stack[excess:]
	}
	return stack
}

func pop(stack []*imaging.Buffer) (*imaging.Buffer, []*imaging.Buffer) {
	n := len(stack) - 1
	top := stack[n]
	stack[n] = nil
	return top, stack[:n]
}
