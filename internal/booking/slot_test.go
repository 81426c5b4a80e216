package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot_ComputesEnd(t *testing.T) {
	slot, err := NewSlot("2025-06-01", "18:00", 2)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", slot.Date)
	assert.Equal(t, "18:00", slot.Start)
	assert.Equal(t, "20:00", slot.End)
}

func TestNewSlot_DefaultDuration(t *testing.T) {
	slot, err := NewSlot("2025-06-01", "12:30", 0)

	require.NoError(t, err)
	assert.Equal(t, "14:30", slot.End)
}

func TestNewSlot_ClampsAtMidnight(t *testing.T) {
	slot, err := NewSlot("2025-06-01", "23:00", 2)

	require.NoError(t, err)
	assert.Equal(t, "23:59", slot.End)
}

func TestNewSlot_RejectsBadInput(t *testing.T) {
	_, err := NewSlot("01-06-2025", "18:00", 2)
	assert.ErrorIs(t, err, ErrBadSlot)

	_, err = NewSlot("2025-06-01", "6pm", 2)
	assert.ErrorIs(t, err, ErrBadSlot)

	_, err = NewSlot("", "", 2)
	assert.ErrorIs(t, err, ErrBadSlot)
}

func TestOverlaps(t *testing.T) {
	// partial overlap from either side
	assert.True(t, overlaps("18:00", "20:00", "19:00", "21:00"))
	assert.True(t, overlaps("19:00", "21:00", "18:00", "20:00"))

	// containment in both directions
	assert.True(t, overlaps("18:00", "22:00", "19:00", "20:00"))
	assert.True(t, overlaps("19:00", "20:00", "18:00", "22:00"))

	// identical windows
	assert.True(t, overlaps("18:00", "20:00", "18:00", "20:00"))

	// back-to-back windows share only a boundary and do not conflict
	assert.False(t, overlaps("18:00", "20:00", "20:00", "22:00"))
	assert.False(t, overlaps("20:00", "22:00", "18:00", "20:00"))

	// disjoint
	assert.False(t, overlaps("10:00", "12:00", "18:00", "20:00"))
}
