package pcount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/persist/internal/pcount"
)

func TestNewCounterStartsUnique(t *testing.T) {
	c := pcount.New()

	assert.True(t, c.IsUnique())
	assert.Equal(t, int64(1), c.Count())
}

func TestShareMakesCounterNonUnique(t *testing.T) {
	c := pcount.New()

	got := c.Share()

	assert.Equal(t, int64(2), got)
	assert.False(t, c.IsUnique())
	assert.Equal(t, int64(2), c.Count())
}

func TestShareAccumulates(t *testing.T) {
	c := pcount.New()

	c.Share()
	c.Share()
	c.Share()

	assert.Equal(t, int64(4), c.Count())
}

func TestNilCounterIsUniqueAndInert(t *testing.T) {
	var c *pcount.Counter

	assert.True(t, c.IsUnique())
	assert.Equal(t, int64(1), c.Count())
	assert.NotPanics(t, func() { c.Share() })
}
