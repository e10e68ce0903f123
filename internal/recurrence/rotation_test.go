package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAssigneeCyclesEveryMemberOnce(t *testing.T) {
	rotation := []RotationMember{
		{UserID: 10, Position: 0},
		{UserID: 20, Position: 1},
		{UserID: 30, Position: 2},
	}

	index := 0
	seen := make(map[uint]int)
	for i := 0; i < len(rotation); i++ {
		userID, newIndex, err := NextAssignee(rotation, index)
		require.NoError(t, err)
		seen[userID]++
		index = newIndex
	}

	assert.Equal(t, map[uint]int{10: 1, 20: 1, 30: 1}, seen)
	assert.Equal(t, 0, index, "full cycle should return the cursor to its start")
}

func TestNextAssigneeOrdersByPosition(t *testing.T) {
	// Insertion order deliberately scrambled.
	rotation := []RotationMember{
		{UserID: 3, Position: 2},
		{UserID: 1, Position: 0},
		{UserID: 2, Position: 1},
	}

	userID, newIndex, err := NextAssignee(rotation, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), userID)
	assert.Equal(t, 1, newIndex)
}

func TestNextAssigneeBreaksTiesByUserID(t *testing.T) {
	rotation := []RotationMember{
		{UserID: 9, Position: 0},
		{UserID: 4, Position: 0},
	}

	first, _, err := NextAssignee(rotation, 0)
	require.NoError(t, err)
	second, _, err := NextAssignee(rotation, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(4), first)
	assert.Equal(t, uint(9), second)
}

func TestNextAssigneeEmptyRotation(t *testing.T) {
	_, _, err := NextAssignee(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyRotation)
}
