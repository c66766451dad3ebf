package tetris

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationStateSetPiece(t *testing.T) {
	var r RotationState
	r.SetPiece(KindJ)

	assert.Equal(t, KindJ, r.Kind())
	assert.Equal(t, 0, r.Index())
	assert.Equal(t, 4, r.Count())
	assert.Equal(t, SpawnShape(KindJ), r.Current())

	require.NoError(t, r.Commit(2))
	r.SetPiece(KindS)
	assert.Equal(t, 0, r.Index(), "loading a piece resets the index")
}

func TestRotationStateNextIsReadOnly(t *testing.T) {
	var r RotationState
	r.SetPiece(KindT)

	shape, idx := r.Next()
	assert.Equal(t, 1, idx)
	assert.Equal(t, Rotations(KindT)[1], shape)
	assert.Equal(t, 0, r.Index(), "Next must not commit")

	_, again := r.Next()
	assert.Equal(t, idx, again)
}

func TestRotationStateWraps(t *testing.T) {
	for _, k := range Kinds {
		var r RotationState
		r.SetPiece(k)
		start := r.Current()

		for range r.Count() {
			_, idx := r.Next()
			require.NoError(t, r.Commit(idx))
		}

		assert.Equal(t, 0, r.Index(), k.String())
		assert.Equal(t, start, r.Current(), k.String())
	}
}

func TestRotationStateCommitOutOfRange(t *testing.T) {
	var r RotationState
	r.SetPiece(KindI)

	for _, idx := range []int{-1, 2, 7} {
		err := r.Commit(idx)
		require.Error(t, err, "index %d", idx)
		assert.True(t, errors.Is(err, ErrRotationOutOfRange), "index %d", idx)
	}
	assert.Equal(t, 0, r.Index(), "failed commits leave the index alone")
}
