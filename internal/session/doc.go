// Package session implements the edit history of the image editor.
//
// A Session owns the buffer being edited, the baseline captured when the
// image was loaded, and linear undo/redo stacks of earlier buffers:
//
//	load ──► [current] ──edit──► undo: [b0]        redo: []
//	                    ──edit──► undo: [b0 b1]     redo: []
//	                    ──undo──► undo: [b0]        redo: [b2]
//	                    ──edit──► undo: [b0 b1']    redo: []   (future discarded)
//
// Recording history and committing a new buffer are separate steps
// (SnapshotBeforeEdit and SetImage) so a caller can group several
// mutations into one undoable action. Apply performs both for a single
// Command, snapshotting only once the transform has succeeded.
//
// # Concurrency
//
// Session is not safe for concurrent use. The server drives it from its
// single request loop.
package session
