package recurrence

import "sort"

// RotationMember is one slot in an auto-assignment cycle.
type RotationMember struct {
	UserID   uint
	Position int
}

// NextAssignee picks the member at currentIndex and advances the cursor,
// wrapping around at the end of the rotation. Members are cycled in ascending
// Position order, ties broken by ascending UserID so the cycle is
// deterministic regardless of insertion order.
func NextAssignee(rotation []RotationMember, currentIndex int) (userID uint, newIndex int, err error) {
	if len(rotation) == 0 {
		return 0, 0, ErrEmptyRotation
	}

	ordered := make([]RotationMember, len(rotation))
	copy(ordered, rotation)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	if currentIndex < 0 || currentIndex >= len(ordered) {
		currentIndex = 0
	}
	return ordered[currentIndex].UserID, (currentIndex + 1) % len(ordered), nil
}
