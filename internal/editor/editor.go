// Package editor exposes the user-facing commands of the image editor
// (open, save, save as, undo, redo and the transforms) on top of a
// session.Session and a file codec.
package editor

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/session"
)

var (
	// ErrNoImageLoaded is returned when a command needs an open image.
	ErrNoImageLoaded = session.ErrNoImageLoaded

	// ErrUnsavedChanges is returned by Open when the current image has
	// unsaved edits and the caller did not force the open.
	ErrUnsavedChanges = errors.New("current image has unsaved changes")

	// ErrNoPath is returned by Save when the image has never been saved or loaded from disk.
	ErrNoPath = errors.New("image has no file path; use save as")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Codec reads and writes image files.
type Codec interface {
	Decode(path string) (*imaging.Buffer, error)
	Encode(buf *imaging.Buffer, path string) error
}

// Status describes the editor state after a command, mirroring what a
// status bar would show.
type Status struct {
	Message   string `json:"message"`
	HasImage  bool   `json:"has_image"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Path      string `json:"path,omitempty"`
	Dirty     bool   `json:"dirty"`
	UndoDepth int    `json:"undo_depth"`
	RedoDepth int    `json:"redo_depth"`
}

// Editor runs commands against one session. It is not safe for concurrent use.
type Editor struct {
	session *session.Session
	codec   Codec
}

// New creates an editor over s, using codec for file access.
func New(s *session.Session, codec Codec) *Editor {
	return &Editor{session: s, codec: codec}
}

// Session returns the underlying edit session.
func (e *Editor) Session() *session.Session {
	return e.session
}

// Open decodes path and starts a fresh history with it.
//
// If the current image is dirty, Open refuses with ErrUnsavedChanges unless
// force is set. A decode failure leaves the session untouched.
func (e *Editor) Open(path string, force bool) (*Status, error) {
	if e.session.Dirty() && !force {
		return nil, ErrUnsavedChanges
	}
	buf, err := e.codec.Decode(path)
	if err != nil {
		return nil, err
	}
	e.session.Load(buf, path)
	return e.status("Opened"), nil
}

// Save writes the current image back to its source path.
func (e *Editor) Save() (*Status, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	if e.session.SourcePath() == "" {
		return nil, ErrNoPath
	}
	return e.SaveAs(e.session.SourcePath())
}

// SaveAs writes the current image to path and makes path the source path.
// On failure the dirty flag is left as it was.
func (e *Editor) SaveAs(path string) (*Status, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	if err := e.codec.Encode(e.session.Current(), path); err != nil {
		return nil, err
	}
	e.session.MarkSaved(path)
	return e.status(fmt.Sprintf("Saved: %s", path)), nil
}

// Undo steps back one edit.
func (e *Editor) Undo() (*Status, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	if !e.session.Undo() {
		return nil, ErrNothingToUndo
	}
	return e.status("Undo"), nil
}

// Redo re-applies the last undone edit.
func (e *Editor) Redo() (*Status, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	if !e.session.Redo() {
		return nil, ErrNothingToRedo
	}
	return e.status("Redo"), nil
}

// Apply runs a transform command as one undoable edit.
func (e *Editor) Apply(cmd session.Command) (*Status, error) {
	if err := session.Apply(e.session, cmd); err != nil {
		return nil, err
	}
	return e.status(fmt.Sprintf("Applied %s", cmd)), nil
}

// Status reports the current state without changing it.
func (e *Editor) Status() *Status {
	if !e.session.HasImage() {
		return e.status("Ready. Open an image.")
	}
	return e.status("Ready")
}

// Preview renders the current image scaled to fit maxWidth x maxHeight.
func (e *Editor) Preview(maxWidth, maxHeight int) (*imaging.PreviewResult, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	return imaging.Preview(e.session.Current(), maxWidth, maxHeight)
}

// SampleColor reads one pixel of the current image.
func (e *Editor) SampleColor(x, y int) (*imaging.ColorResult, error) {
	if !e.session.HasImage() {
		return nil, ErrNoImageLoaded
	}
	return imaging.SampleColor(e.session.Current(), x, y)
}

func (e *Editor) status(msg string) *Status {
	st := &Status{
		Message:   msg,
		HasImage:  e.session.HasImage(),
		Path:      e.session.SourcePath(),
		Dirty:     e.session.Dirty(),
		UndoDepth: e.session.UndoDepth(),
		RedoDepth: e.session.RedoDepth(),
	}
	if cur := e.session.Current(); cur != nil {
		st.Width = cur.Width()
		st.Height = cur.Height()
		st.Message = fmt.Sprintf("%s (%dx%d)", msg, st.Width, st.Height)
	}
	return st
}
