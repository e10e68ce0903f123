package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/recurrence"
	"taskflow/internal/repository"
)

// RuleStore is the persistence collaborator for recurrence rules.
type RuleStore interface {
	Create(ctx context.Context, rule *model.RecurrenceRule) error
	FindByID(ctx context.Context, id uint) (*model.RecurrenceRule, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.RecurrenceRule, error)
	LoadDueRules(ctx context.Context, now time.Time) ([]model.RecurrenceRule, error)
	Save(ctx context.Context, rule *model.RecurrenceRule, expectedVersion int) error
	ApplyGeneration(ctx context.Context, rule *model.RecurrenceRule, expectedVersion int, task *model.Task, record *model.GenerationRecord) error
	HasGenerationFor(ctx context.Context, ruleID uint, at time.Time) (bool, error)
}

// TaskStore resolves base task templates.
type TaskStore interface {
	FindByID(ctx context.Context, id uint) (*model.Task, error)
}

// NotificationQueue accepts notifications for later delivery. Queueing is
// best-effort from the engine's point of view.
type NotificationQueue interface {
	Schedule(ctx context.Context, n *model.Notification) error
}

// TickResult reports what a tick did.
type TickResult struct {
	Outcome recurrence.Outcome
	TaskID  uint
}

// RecurrenceService orchestrates rule ticks: it runs the pure planner and
// applies the resulting state and side effects through the stores.
type RecurrenceService struct {
	rules         RuleStore
	tasks         TaskStore
	notifications NotificationQueue
	clock         Clock
}

func NewRecurrenceService(rules RuleStore, tasks TaskStore, notifications NotificationQueue, clock Clock) *RecurrenceService {
	return &RecurrenceService{rules: rules, tasks: tasks, notifications: notifications, clock: clock}
}

// RuleInput carries the fields needed to create a recurrence rule.
type RuleInput struct {
	BaseTaskID uint
	ProjectID  uint

	Frequency    string
	DaysOfWeek   []int
	DatesOfMonth []int
	MonthsOfYear []int
	TimeOfDay    string

	StartDate time.Time
	EndDate   *time.Time

	NotifyEnabled      bool
	NotifyRecipients   []uint
	NotifyAdvanceHours int

	AutoAssignEnabled bool
	Rotation          []recurrence.RotationMember
}

// CreateRule validates the configuration eagerly and persists a new active
// rule. Frequency errors surface here, never during a tick.
func (s *RecurrenceService) CreateRule(ctx context.Context, input RuleInput) (*model.RecurrenceRule, error) {
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			input.EndDate.Format("2006-01-02"), input.StartDate.Format("2006-01-02"))
	}
	if input.NotifyAdvanceHours < 0 {
		return nil, fmt.Errorf("advance hours must not be negative")
	}

	if input.TimeOfDay != "" {
		if _, _, err := recurrence.ParseTimeOfDay(input.TimeOfDay); err != nil {
			return nil, err
		}
	}
	custom := customFromInput(input)
	if err := recurrence.Validate(recurrence.Frequency(input.Frequency), custom, input.StartDate); err != nil {
		return nil, err
	}

	if _, err := s.tasks.FindByID(ctx, input.BaseTaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("base task %d not found", input.BaseTaskID)
		}
		return nil, fmt.Errorf("load base task: %w", err)
	}

	rule := &model.RecurrenceRule{
		BaseTaskID:         input.BaseTaskID,
		ProjectID:          input.ProjectID,
		Frequency:          input.Frequency,
		DaysOfWeek:         input.DaysOfWeek,
		DatesOfMonth:       input.DatesOfMonth,
		MonthsOfYear:       input.MonthsOfYear,
		TimeOfDay:          input.TimeOfDay,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		NextGenerationAt:   input.StartDate,
		Status:             model.RuleStatusActive,
		Version:            1,
		NotifyEnabled:      input.NotifyEnabled,
		NotifyRecipients:   input.NotifyRecipients,
		NotifyAdvanceHours: input.NotifyAdvanceHours,
		AutoAssignEnabled:  input.AutoAssignEnabled,
	}
	for _, member := range input.Rotation {
		rule.Rotation = append(rule.Rotation, model.RotationMember{UserID: member.UserID, Position: member.Position})
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// ValidateRule re-checks an existing rule's frequency configuration.
func (s *RecurrenceService) ValidateRule(ctx context.Context, ruleID uint) error {
	rule, err := s.rules.FindByID(ctx, ruleID)
	if err != nil {
		return err
	}
	state := ruleState(rule)
	return recurrence.Validate(state.Frequency, state.Custom, s.clock.Now())
}

// PauseRule stops generation for an active rule.
func (s *RecurrenceService) PauseRule(ctx context.Context, ruleID uint) error {
	return s.transition(ctx, ruleID, model.RuleStatusActive, model.RuleStatusPaused)
}

// ResumeRule re-activates a paused rule.
func (s *RecurrenceService) ResumeRule(ctx context.Context, ruleID uint) error {
	return s.transition(ctx, ruleID, model.RuleStatusPaused, model.RuleStatusActive)
}

func (s *RecurrenceService) transition(ctx context.Context, ruleID uint, from, to string) error {
	rule, err := s.rules.FindByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule.Status != from {
		return fmt.Errorf("rule %d is %s, expected %s", ruleID, rule.Status, from)
	}
	expected := rule.Version
	rule.Status = to
	return s.rules.Save(ctx, rule, expected)
}

// ListRules returns all rules of a project.
func (s *RecurrenceService) ListRules(ctx context.Context, projectID uint) ([]model.RecurrenceRule, error) {
	return s.rules.ListByProject(ctx, projectID)
}

// SweepDue ticks every rule whose next generation time has passed. Individual
// tick failures are logged and do not abort the sweep; version conflicts mean
// another tick already won and are skipped.
func (s *RecurrenceService) SweepDue(ctx context.Context) error {
	now := s.clock.Now()
	rules, err := s.rules.LoadDueRules(ctx, now)
	if err != nil {
		return err
	}
	for i := range rules {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rule := &rules[i]
		result, err := s.Tick(ctx, rule)
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			log.Printf("[info] rule %d: concurrent tick detected, skipping", rule.ID)
		case err != nil:
			log.Printf("[error] rule %d: tick failed: %v", rule.ID, err)
		case result.Outcome == recurrence.OutcomeGenerated:
			log.Printf("[info] rule %d: generated task %d", rule.ID, result.TaskID)
		case result.Outcome == recurrence.OutcomeCompleted:
			log.Printf("[info] rule %d: reached end date, completed", rule.ID)
		}
	}
	return nil
}

// Tick evaluates one rule now. Generation is all-or-nothing: the task row,
// history entry, and cursor advance commit in one transaction, so a failure
// leaves the rule exactly as it was. Notification queueing happens after the
// commit and never rolls a generation back.
func (s *RecurrenceService) Tick(ctx context.Context, rule *model.RecurrenceRule) (TickResult, error) {
	now := s.clock.Now()

	template, err := s.tasks.FindByID(ctx, rule.BaseTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[warn] rule %d: base task %d is gone, skipping", rule.ID, rule.BaseTaskID)
			return TickResult{Outcome: recurrence.OutcomeNoOp}, nil
		}
		return TickResult{}, fmt.Errorf("load base task: %w", err)
	}

	plan, err := recurrence.PlanTick(ruleState(rule), templateFrom(template), now)
	if err != nil {
		return TickResult{}, err
	}

	switch plan.Outcome {
	case recurrence.OutcomeCompleted:
		expected := rule.Version
		saved := snapshot(rule)
		applyState(rule, plan.Rule)
		if err := s.rules.Save(ctx, rule, expected); err != nil {
			restore(rule, saved)
			return TickResult{}, err
		}
		return TickResult{Outcome: recurrence.OutcomeCompleted}, nil

	case recurrence.OutcomeGenerated:
		exists, err := s.rules.HasGenerationFor(ctx, rule.ID, plan.GeneratedFor)
		if err != nil {
			return TickResult{}, err
		}
		if exists {
			// Retried tick; the generation already committed.
			return TickResult{Outcome: recurrence.OutcomeNoOp}, nil
		}

		task := taskFrom(rule.ProjectID, plan.NewTask)
		record := &model.GenerationRecord{
			GeneratedFor: plan.GeneratedFor,
			Status:       model.TaskStatusPending,
		}
		expected := rule.Version
		saved := snapshot(rule)
		applyState(rule, plan.Rule)
		if err := s.rules.ApplyGeneration(ctx, rule, expected, task, record); err != nil {
			restore(rule, saved)
			return TickResult{}, err
		}

		for _, request := range plan.Notifications {
			notification := &model.Notification{
				UserID:  request.RecipientID,
				RuleID:  rule.ID,
				TaskID:  task.ID,
				Message: request.Message,
				SendAt:  request.SendAt,
			}
			if err := s.notifications.Schedule(ctx, notification); err != nil {
				log.Printf("[warn] rule %d: queue notification for user %d: %v", rule.ID, request.RecipientID, err)
			}
		}
		return TickResult{Outcome: recurrence.OutcomeGenerated, TaskID: task.ID}, nil

	default:
		return TickResult{Outcome: recurrence.OutcomeNoOp}, nil
	}
}

func customFromInput(input RuleInput) *recurrence.CustomFrequency {
	if recurrence.Frequency(input.Frequency) != recurrence.FrequencyCustom {
		return nil
	}
	return &recurrence.CustomFrequency{
		DaysOfWeek:   input.DaysOfWeek,
		DatesOfMonth: input.DatesOfMonth,
		MonthsOfYear: input.MonthsOfYear,
		TimeOfDay:    input.TimeOfDay,
	}
}

func ruleState(rule *model.RecurrenceRule) recurrence.RuleState {
	state := recurrence.RuleState{
		Frequency:          recurrence.Frequency(rule.Frequency),
		TimeOfDay:          rule.TimeOfDay,
		StartDate:          rule.StartDate,
		EndDate:            rule.EndDate,
		LastGeneratedAt:    rule.LastGeneratedAt,
		NextGenerationAt:   rule.NextGenerationAt,
		Status:             recurrence.RuleStatus(rule.Status),
		AutoAssignEnabled:  rule.AutoAssignEnabled,
		RotationIndex:      rule.RotationIndex,
		NotifyEnabled:      rule.NotifyEnabled,
		Recipients:         rule.NotifyRecipients,
		NotifyAdvanceHours: rule.NotifyAdvanceHours,
	}
	if recurrence.Frequency(rule.Frequency) == recurrence.FrequencyCustom {
		state.Custom = &recurrence.CustomFrequency{
			DaysOfWeek:   rule.DaysOfWeek,
			DatesOfMonth: rule.DatesOfMonth,
			MonthsOfYear: rule.MonthsOfYear,
			TimeOfDay:    rule.TimeOfDay,
		}
	}
	for _, member := range rule.Rotation {
		state.Rotation = append(state.Rotation, recurrence.RotationMember{UserID: member.UserID, Position: member.Position})
	}
	return state
}

func applyState(rule *model.RecurrenceRule, state recurrence.RuleState) {
	rule.Status = string(state.Status)
	rule.LastGeneratedAt = state.LastGeneratedAt
	rule.NextGenerationAt = state.NextGenerationAt
	rule.RotationIndex = state.RotationIndex
}

// cursorSnapshot holds the mutable fields of a rule so a failed tick can put
// the in-memory copy back the way it was.
type cursorSnapshot struct {
	status           string
	lastGeneratedAt  *time.Time
	nextGenerationAt time.Time
	rotationIndex    int
}

func snapshot(rule *model.RecurrenceRule) cursorSnapshot {
	return cursorSnapshot{
		status:           rule.Status,
		lastGeneratedAt:  rule.LastGeneratedAt,
		nextGenerationAt: rule.NextGenerationAt,
		rotationIndex:    rule.RotationIndex,
	}
}

func restore(rule *model.RecurrenceRule, saved cursorSnapshot) {
	rule.Status = saved.status
	rule.LastGeneratedAt = saved.lastGeneratedAt
	rule.NextGenerationAt = saved.nextGenerationAt
	rule.RotationIndex = saved.rotationIndex
}

func templateFrom(task *model.Task) recurrence.TaskTemplate {
	return recurrence.TaskTemplate{
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
	}
}

func taskFrom(projectID uint, input *recurrence.NewTaskInput) *model.Task {
	deadline := input.Deadline
	return &model.Task{
		PublicID:    uuid.NewString(),
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
		Deadline:    &deadline,
		CreatedAt:   input.CreatedAt,
	}
}
