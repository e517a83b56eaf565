package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueSorted(t *testing.T) {
	// GIVEN: Keys as they may arrive across SCAN batches, with repeats
	keys := []string{"preset", "flags", "preset", "a", "flags"}

	// THEN: Each key appears once, in order
	assert.Equal(t, []string{"a", "flags", "preset"}, uniqueSorted(keys))
	assert.Empty(t, uniqueSorted(nil))
}
