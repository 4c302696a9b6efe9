package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewULID()
		_, err := ulid.ParseStrict(id)
		assert.NoError(t, err)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}

		assert.Greater(t, id, prev)
		prev = id
	}
}
