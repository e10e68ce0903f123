package recurrence

import "time"

// TaskTemplate carries the fields of a base task that a generated instance
// inherits. Identity fields (id, timestamps) are deliberately absent.
type TaskTemplate struct {
	ProjectID   uint
	Title       string
	Description string
	Priority    string
	AssignedTo  *uint
}

// NewTaskInput is a concrete task instance ready for persistence.
type NewTaskInput struct {
	ProjectID   uint
	Title       string
	Description string
	Priority    string
	Status      string
	AssignedTo  *uint
	Deadline    time.Time
	CreatedAt   time.Time
}

// Materialize produces a new task instance from a template for the given
// date. The deadline lands on forDate at timeOfDay when configured, else at
// the end of that day. When assignee is nil the template's own assignee is
// kept, not cleared.
func Materialize(base TaskTemplate, forDate time.Time, timeOfDay string, assignee *uint, now time.Time) NewTaskInput {
	input := NewTaskInput{
		ProjectID:   base.ProjectID,
		Title:       base.Title,
		Description: base.Description,
		Priority:    base.Priority,
		Status:      "pending",
		AssignedTo:  base.AssignedTo,
		Deadline:    deadlineFor(forDate, timeOfDay),
		CreatedAt:   now,
	}
	if assignee != nil {
		input.AssignedTo = assignee
	}
	return input
}

func deadlineFor(forDate time.Time, timeOfDay string) time.Time {
	if timeOfDay != "" {
		if hour, minute, err := ParseTimeOfDay(timeOfDay); err == nil {
			return time.Date(forDate.Year(), forDate.Month(), forDate.Day(), hour, minute, 0, 0, forDate.Location())
		}
	}
	return time.Date(forDate.Year(), forDate.Month(), forDate.Day(), 23, 59, 59, 0, forDate.Location())
}
