// AngelaMos | 2026
// allocator_test.go

package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSampleID(t *testing.T) {
	assert.Equal(t, int64(1), NextSampleID(nil))
	assert.Equal(t, int64(2), NextSampleID(ptr(int64(1))))
	assert.Equal(t, int64(43), NextSampleID(ptr(int64(42))))
}

func TestNextSampleID_Sequential(t *testing.T) {
	var current *int64
	for want := int64(1); want <= 50; want++ {
		next := NextSampleID(current)
		assert.Equal(t, want, next)
		current = &next
	}
}
