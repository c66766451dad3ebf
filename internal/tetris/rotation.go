package tetris

import (
	"errors"
	"fmt"
)

// ErrRotationOutOfRange is returned when committing a rotation index the
// loaded piece does not have.
var ErrRotationOutOfRange = errors.New("tetris: rotation index out of range")

// RotationState tracks which orientation of the active piece is in use.
type RotationState struct {
	kind   Kind
	shapes []Shape
	index  int
}

// SetPiece loads the rotations for k and selects the spawn orientation.
func (r *RotationState) SetPiece(k Kind) {
	r.kind = k
	r.shapes = Rotations(k)
	r.index = 0
}

// Kind returns the loaded piece.
func (r *RotationState) Kind() Kind {
	return r.kind
}

// Index returns the committed rotation index.
func (r *RotationState) Index() int {
	return r.index
}

// Count returns the number of rotations of the loaded piece.
func (r *RotationState) Count() int {
	return len(r.shapes)
}

// Current returns the committed orientation.
func (r *RotationState) Current() Shape {
	if len(r.shapes) == 0 {
		return Shape{}
	}
	return r.shapes[r.index]
}

// Next returns the following orientation and its index without committing it.
func (r *RotationState) Next() (Shape, int) {
	if len(r.shapes) == 0 {
		return Shape{}, 0
	}
	next := (r.index + 1) % len(r.shapes)
	return r.shapes[next], next
}

// Commit selects rotation index.
func (r *RotationState) Commit(index int) error {
	if index < 0 || index >= len(r.shapes) {
		return fmt.Errorf("commit %d for %s (%d rotations): %w", index, r.kind, len(r.shapes), ErrRotationOutOfRange)
	}
	r.index = index
	return nil
}
