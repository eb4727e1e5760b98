package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "a"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains(nil, "a"))
}

func TestToSet(t *testing.T) {
	set := ToSet([]string{"a", "b", "a"})
	assert.Len(t, set, 2)
	_, ok := set["a"]
	assert.True(t, ok)
	_, ok = set["c"]
	assert.False(t, ok)
}
