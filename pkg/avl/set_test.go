package avl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetInsertRemoveExists(t *testing.T) {
	t.Parallel()

	s := NewSet[int](intCmp)
	s = s.Insert(3).Insert(1).Insert(2)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, s.ToSequence())
	assert.True(t, s.Exists(2))

	s2 := s.Remove(2)
	assert.False(t, s2.Exists(2))
	assert.True(t, s.Exists(2), "original set must observe its original contents")
}

func TestSetDuplicateInsertIsNoOp(t *testing.T) {
	t.Parallel()

	s := NewSet[int](intCmp).Insert(5)
	s2 := s.Insert(5)

	assert.Equal(t, 1, s2.Len())
	assert.Equal(t, s.ToSequence(), s2.ToSequence())
}
