package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaterializeCopiesTemplate(t *testing.T) {
	baseAssignee := uint(7)
	base := TaskTemplate{
		ProjectID:   3,
		Title:       "Weekly report",
		Description: "Compile the status report",
		Priority:    "high",
		AssignedTo:  &baseAssignee,
	}
	now := time.Date(2025, time.January, 8, 6, 0, 0, 0, time.UTC)
	forDate := time.Date(2025, time.January, 8, 6, 0, 0, 0, time.UTC)

	input := Materialize(base, forDate, "", nil, now)

	assert.Equal(t, base.ProjectID, input.ProjectID)
	assert.Equal(t, base.Title, input.Title)
	assert.Equal(t, base.Description, input.Description)
	assert.Equal(t, base.Priority, input.Priority)
	assert.Equal(t, "pending", input.Status)
	assert.Equal(t, now, input.CreatedAt)
	// Without an explicit assignee the template's assignee is kept.
	assert.Equal(t, &baseAssignee, input.AssignedTo)
}

func TestMaterializeDeadlineEndOfDay(t *testing.T) {
	forDate := time.Date(2025, time.January, 8, 6, 0, 0, 0, time.UTC)

	input := Materialize(TaskTemplate{}, forDate, "", nil, forDate)

	assert.Equal(t, time.Date(2025, time.January, 8, 23, 59, 59, 0, time.UTC), input.Deadline)
}

func TestMaterializeDeadlineAtTimeOfDay(t *testing.T) {
	forDate := time.Date(2025, time.January, 8, 6, 0, 0, 0, time.UTC)

	input := Materialize(TaskTemplate{}, forDate, "14:30", nil, forDate)

	assert.Equal(t, time.Date(2025, time.January, 8, 14, 30, 0, 0, time.UTC), input.Deadline)
}

func TestMaterializeAssigneeOverride(t *testing.T) {
	baseAssignee := uint(7)
	override := uint(12)
	base := TaskTemplate{AssignedTo: &baseAssignee}
	forDate := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	input := Materialize(base, forDate, "", &override, forDate)

	assert.Equal(t, &override, input.AssignedTo)
}
