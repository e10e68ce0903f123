package recurrence

import (
	"fmt"
	"time"
)

// RuleStatus is the lifecycle state of a rule.
type RuleStatus string

const (
	StatusActive    RuleStatus = "active"
	StatusPaused    RuleStatus = "paused"
	StatusCompleted RuleStatus = "completed"
)

// RuleState is the scheduling state of one rule, detached from persistence.
// PlanTick consumes and returns it by value; callers decide what to persist.
type RuleState struct {
	Frequency Frequency
	Custom    *CustomFrequency
	TimeOfDay string // HH:MM, applied to generated deadlines

	StartDate time.Time
	EndDate   *time.Time

	LastGeneratedAt  *time.Time
	NextGenerationAt time.Time

	Status RuleStatus

	AutoAssignEnabled bool
	Rotation          []RotationMember
	RotationIndex     int

	NotifyEnabled      bool
	Recipients         []uint
	NotifyAdvanceHours int
}

// Outcome classifies the result of a tick.
type Outcome int

const (
	OutcomeNoOp Outcome = iota
	OutcomeCompleted
	OutcomeGenerated
)

// NotificationRequest asks for a message to be delivered to a user at SendAt.
type NotificationRequest struct {
	RecipientID uint
	Message     string
	SendAt      time.Time
}

// TickPlan is everything one tick wants to change: the updated rule state and
// the side effects for the caller to apply. Nothing has been persisted yet.
type TickPlan struct {
	Outcome       Outcome
	Rule          RuleState
	NewTask       *NewTaskInput
	GeneratedFor  time.Time
	Notifications []NotificationRequest
}

// PlanTick evaluates a rule against now and returns what should happen, as
// pure data. No side effects: the caller persists the new task and the
// updated rule atomically, then hands the notification requests to the queue.
//
// State machine: an active rule past its end date completes without
// generating; an active rule that is due generates and advances its cursors
// and rotation; paused and completed rules ignore ticks.
func PlanTick(rule RuleState, template TaskTemplate, now time.Time) (TickPlan, error) {
	plan := TickPlan{Outcome: OutcomeNoOp, Rule: rule}

	if rule.Status != StatusActive {
		return plan, nil
	}

	if rule.EndDate != nil && now.After(*rule.EndDate) {
		plan.Outcome = OutcomeCompleted
		plan.Rule.Status = StatusCompleted
		return plan, nil
	}

	if now.Before(rule.NextGenerationAt) {
		return plan, nil
	}

	var assignee *uint
	if rule.AutoAssignEnabled && len(rule.Rotation) > 0 {
		userID, newIndex, err := NextAssignee(rule.Rotation, rule.RotationIndex)
		if err != nil {
			// Unreachable given the length check; degrade to no assignment.
			assignee = nil
		} else {
			assignee = &userID
			plan.Rule.RotationIndex = newIndex
		}
	}

	task := Materialize(template, now, rule.TimeOfDay, assignee, now)
	plan.NewTask = &task
	plan.GeneratedFor = now

	generatedAt := now
	plan.Rule.LastGeneratedAt = &generatedAt
	next, err := ComputeNext(now, rule.Frequency, rule.Custom)
	if err != nil {
		return TickPlan{Outcome: OutcomeNoOp, Rule: rule}, fmt.Errorf("compute next generation: %w", err)
	}
	plan.Rule.NextGenerationAt = next

	if rule.NotifyEnabled {
		sendAt := task.Deadline.Add(-time.Duration(rule.NotifyAdvanceHours) * time.Hour)
		message := fmt.Sprintf("Upcoming task %q is due %s", task.Title, task.Deadline.Format("2006-01-02 15:04"))
		for _, recipient := range rule.Recipients {
			plan.Notifications = append(plan.Notifications, NotificationRequest{
				RecipientID: recipient,
				Message:     message,
				SendAt:      sendAt,
			})
		}
	}

	plan.Outcome = OutcomeGenerated
	return plan, nil
}
