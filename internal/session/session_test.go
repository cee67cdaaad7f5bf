package session

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// solidBuffer creates a buffer filled with a single gray level.
func solidBuffer(t *testing.T, width, height int, v uint8) *imaging.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	buf, err := imaging.NewBuffer(img)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}

// patternBuffer creates a buffer where every pixel is distinguishable.
func patternBuffer(t *testing.T, width, height int) *imaging.Buffer {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 5), uint8(y * 3), uint8(x ^ y), 255})
		}
	}
	buf, err := imaging.NewBuffer(img)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}

func TestNew_Empty(t *testing.T) {
	s := New(0)
	if s.HasImage() || s.Current() != nil || s.Original() != nil {
		t.Error("new session should have no image")
	}
	if s.Dirty() {
		t.Error("new session should not be dirty")
	}
	if s.SourcePath() != "" {
		t.Errorf("SourcePath: got %q, want empty", s.SourcePath())
	}
	if s.UndoDepth() != 0 || s.RedoDepth() != 0 {
		t.Error("new session should have empty stacks")
	}
	if New(-3).HistoryLimit() != 0 {
		t.Error("negative limit should mean unbounded")
	}
}

func TestLoad(t *testing.T) {
	s := New(0)
	buf := solidBuffer(t, 10, 10, 0)
	s.Load(buf, "/tmp/a.png")

	if !s.HasImage() {
		t.Fatal("HasImage should be true after Load")
	}
	if !s.Current().Equal(buf) || !s.Original().Equal(buf) {
		t.Error("current and original should equal the loaded buffer")
	}
	if s.Current() == buf || s.Original() == buf {
		t.Error("Load should keep copies, not the caller's buffer")
	}
	if s.SourcePath() != "/tmp/a.png" {
		t.Errorf("SourcePath: got %q", s.SourcePath())
	}
	if s.Dirty() {
		t.Error("session should not be dirty after Load")
	}
}

func TestLoad_ResetsHistory(t *testing.T) {
	s := New(0)
	s.Load(solidBuffer(t, 4, 4, 0), "a.png")
	s.SnapshotBeforeEdit()
	s.SetImage(solidBuffer(t, 4, 4, 1))
	s.SnapshotBeforeEdit()
	s.SetImage(solidBuffer(t, 4, 4, 2))
	s.Undo()

	next := solidBuffer(t, 6, 6, 9)
	s.Load(next, "b.png")

	if s.UndoDepth() != 0 || s.RedoDepth() != 0 {
		t.Errorf("stacks after Load: undo=%d redo=%d, want 0/0", s.UndoDepth(), s.RedoDepth())
	}
	if s.Dirty() {
		t.Error("Load should clear dirty")
	}
	if !s.Original().Equal(next) {
		t.Error("Load should replace the original")
	}
}

func TestSnapshotBeforeEdit_NoImage(t *testing.T) {
	s := New(0)
	s.SnapshotBeforeEdit()
	if s.UndoDepth() != 0 {
		t.Error("snapshot without an image should be a no-op")
	}
}

func TestSnapshotBeforeEdit_ClearsRedo(t *testing.T) {
	s := New(0)
	s.Load(solidBuffer(t, 4, 4, 0), "")
	s.SnapshotBeforeEdit()
	s.SetImage(solidBuffer(t, 4, 4, 1))
	if !s.Undo() {
		t.Fatal("Undo failed")
	}
	if s.RedoDepth() != 1 {
		t.Fatalf("RedoDepth: got %d, want 1", s.RedoDepth())
	}

	s.SnapshotBeforeEdit()
	if s.RedoDepth() != 0 {
		t.Error("snapshot should clear the redo stack")
	}
	if s.UndoDepth() != 1 {
		t.Errorf("UndoDepth: got %d, want 1", s.UndoDepth())
	}
}

func TestSetImage(t *testing.T) {
	s := New(0)
	s.Load(solidBuffer(t, 4, 4, 0), "")
	next := solidBuffer(t, 4, 4, 50)
	s.SetImage(next)

	if !s.Dirty() {
		t.Error("SetImage should mark dirty")
	}
	if s.Current() != next {
		t.Error("SetImage should install the buffer")
	}
	if s.UndoDepth() != 0 {
		t.Error("SetImage must not record history")
	}
	if s.Original().Equal(next) {
		t.Error("SetImage must not touch the original")
	}
}

func TestUndoRedo_Empty(t *testing.T) {
	s := New(0)
	if s.Undo() {
		t.Error("Undo without image should fail")
	}
	if s.Redo() {
		t.Error("Redo without image should fail")
	}

	s.Load(solidBuffer(t, 4, 4, 0), "")
	if s.Undo() {
		t.Error("Undo with empty stack should fail")
	}
	if s.Redo() {
		t.Error("Redo with empty stack should fail")
	}
	if s.Dirty() {
		t.Error("failed undo/redo should not mark dirty")
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := New(0)
	base := solidBuffer(t, 4, 4, 0)
	s.Load(base, "")

	states := []*imaging.Buffer{base}
	for i := 1; i <= 5; i++ {
		next := solidBuffer(t, 4, 4, uint8(i*10))
		s.SnapshotBeforeEdit()
		s.SetImage(next)
		states = append(states, next)
	}

	for i := 5; i >= 1; i-- {
		if !s.Undo() {
			t.Fatalf("Undo #%d failed", 6-i)
		}
		if !s.Current().Equal(states[i-1]) {
			t.Fatalf("after undo to step %d, current does not match", i-1)
		}
		if !s.Dirty() {
			t.Error("Undo should mark dirty")
		}
	}
	if s.Undo() {
		t.Error("Undo past the beginning should fail")
	}
	if !s.Current().Equal(base) {
		t.Error("n undos should return to the loaded image")
	}

	for i := 1; i <= 5; i++ {
		if !s.Redo() {
			t.Fatalf("Redo #%d failed", i)
		}
		if !s.Current().Equal(states[i]) {
			t.Fatalf("after redo to step %d, current does not match", i)
		}
	}
	if s.Redo() {
		t.Error("Redo past the end should fail")
	}
}

func TestMarkSaved(t *testing.T) {
	s := New(0)
	s.Load(solidBuffer(t, 4, 4, 0), "a.png")
	s.SetImage(solidBuffer(t, 4, 4, 1))

	s.MarkSaved("b.png")
	if s.Dirty() {
		t.Error("MarkSaved should clear dirty")
	}
	if s.SourcePath() != "b.png" {
		t.Errorf("SourcePath: got %q, want b.png", s.SourcePath())
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New(3)
	s.Load(solidBuffer(t, 2, 2, 0), "")

	for i := 1; i <= 6; i++ {
		s.SnapshotBeforeEdit()
		s.SetImage(solidBuffer(t, 2, 2, uint8(i)))
	}
	if s.UndoDepth() != 3 {
		t.Fatalf("UndoDepth: got %d, want 3", s.UndoDepth())
	}

	// The oldest snapshots were dropped: undo reaches 3, not 0.
	for s.Undo() {
	}
	if r, _, _ := s.Current().RGBAt(0, 0); r != 3 {
		t.Errorf("oldest reachable state: got %d, want 3", r)
	}
	if s.RedoDepth() != 3 {
		t.Errorf("RedoDepth: got %d, want 3", s.RedoDepth())
	}
}
