package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrangerName_StableAndBounded(t *testing.T) {
	name := StrangerName("chat-1")

	// deterministic per chat id
	assert.Equal(t, name, StrangerName("chat-1"))

	// always Stranger #100..#999
	for _, id := range []string{"", "a", "chat-1", "3f8a9c72-1d2e-4b5f-8a6c-9e0d1f2a3b4c"} {
		got := StrangerName(id)
		assert.Regexp(t, `^Stranger #\d{3}$`, got)
	}
}

func TestStrangerName_DerivationRule(t *testing.T) {
	// "ab" = 97 + 98 = 195, 195 % 900 + 100 = 295
	assert.Equal(t, "Stranger #295", StrangerName("ab"))
}
