package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPatientNumber_EmptySystem(t *testing.T) {
	alloc := NewAllocator()
	assert.Equal(t, "1001", alloc.NextPatientNumber(nil, nil))
}

func TestNextPatientNumber_Monotonic(t *testing.T) {
	alloc := NewAllocator()
	assert.Equal(t, "1003", alloc.NextPatientNumber([]string{"1001", "1002"}, nil))
	assert.Equal(t, "1003", alloc.NextPatientNumber(nil, []string{"1001", "1002"}))
}

func TestNextPatientNumber_TakesHighestOfBothSources(t *testing.T) {
	alloc := NewAllocator()

	// The persisted file can be ahead of memory after a fresh start,
	// and memory can be ahead after a failed save.
	assert.Equal(t, "1008", alloc.NextPatientNumber([]string{"1002"}, []string{"1007"}))
	assert.Equal(t, "1008", alloc.NextPatientNumber([]string{"1007"}, []string{"1002"}))
}

func TestNextPatientNumber_IgnoresNonNumeric(t *testing.T) {
	alloc := NewAllocator()
	assert.Equal(t, "1001", alloc.NextPatientNumber([]string{"abc", ""}, []string{"-5"}))
	assert.Equal(t, "1005", alloc.NextPatientNumber([]string{"abc", "1004"}, nil))
}

func TestNextPatientNumber_GapsAreNotReused(t *testing.T) {
	alloc := NewAllocator()

	// 1001 was removed; the next number still comes after the highest
	// ever allocated, not from the gap.
	assert.Equal(t, "1003", alloc.NextPatientNumber([]string{"1002"}, []string{"1002"}))
}
