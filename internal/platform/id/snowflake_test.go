package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUniqueAndIncreasing(t *testing.T) {
	seen := make(map[int64]struct{}, 1000)
	var last int64
	for i := 0; i < 1000; i++ {
		v := New()
		_, dup := seen[v]
		assert.False(t, dup, "duplicate id %d", v)
		assert.Greater(t, v, last)
		seen[v] = struct{}{}
		last = v
	}
}
