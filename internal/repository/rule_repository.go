package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

var (
	// ErrVersionConflict means another tick already updated the rule; the
	// caller must re-read and skip rather than retry blindly.
	ErrVersionConflict = errors.New("rule version conflict")

	// ErrRuleNotFound means no rule exists with the given id.
	ErrRuleNotFound = errors.New("rule not found")
)

// RuleRepository handles persistence of recurrence rules.
type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, rule *model.RecurrenceRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("create rule: %w", err)
	}
	return nil
}

func (r *RuleRepository) FindByID(ctx context.Context, id uint) (*model.RecurrenceRule, error) {
	var rule model.RecurrenceRule
	err := r.db.WithContext(ctx).Preload("Rotation").First(&rule, id).Error
	switch {
	case err == nil:
		return &rule, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrRuleNotFound
	default:
		return nil, fmt.Errorf("find rule: %w", err)
	}
}

// LoadDueRules returns active rules whose next generation time has passed.
func (r *RuleRepository) LoadDueRules(ctx context.Context, now time.Time) ([]model.RecurrenceRule, error) {
	var rules []model.RecurrenceRule
	if err := r.db.WithContext(ctx).Preload("Rotation").
		Where("status = ? AND next_generation_at <= ?", model.RuleStatusActive, now).
		Order("next_generation_at ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("load due rules: %w", err)
	}
	return rules, nil
}

func (r *RuleRepository) ListByProject(ctx context.Context, projectID uint) ([]model.RecurrenceRule, error) {
	var rules []model.RecurrenceRule
	if err := r.db.WithContext(ctx).Preload("Rotation").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return rules, nil
}

// Save writes the mutable scheduling fields of a rule, guarded by an
// optimistic version check. ErrVersionConflict means a concurrent tick won.
func (r *RuleRepository) Save(ctx context.Context, rule *model.RecurrenceRule, expectedVersion int) error {
	res := r.db.WithContext(ctx).Model(&model.RecurrenceRule{}).
		Where("id = ? AND version = ?", rule.ID, expectedVersion).
		Updates(ruleUpdates(rule, expectedVersion))
	if res.Error != nil {
		return fmt.Errorf("save rule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	rule.Version = expectedVersion + 1
	return nil
}

// ApplyGeneration commits one generation as a single transaction: the new
// task row, the history entry, and the rule's cursor advance. Any failure
// rolls the whole tick back, including the task row, so a crash or a version
// conflict can never leave cursors advanced without a matching history entry.
func (r *RuleRepository) ApplyGeneration(ctx context.Context, rule *model.RecurrenceRule, expectedVersion int, task *model.Task, record *model.GenerationRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("create generated task: %w", err)
		}
		record.RuleID = rule.ID
		record.TaskID = task.ID
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("append generation history: %w", err)
		}
		res := tx.Model(&model.RecurrenceRule{}).
			Where("id = ? AND version = ?", rule.ID, expectedVersion).
			Updates(ruleUpdates(rule, expectedVersion))
		if res.Error != nil {
			return fmt.Errorf("advance rule cursors: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return err
	}
	rule.Version = expectedVersion + 1
	return nil
}

// HasGenerationFor reports whether the rule already materialized a task for
// the calendar day of at. Used to keep retried ticks idempotent.
func (r *RuleRepository) HasGenerationFor(ctx context.Context, ruleID uint, at time.Time) (bool, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GenerationRecord{}).
		Where("rule_id = ? AND generated_for >= ? AND generated_for < ?", ruleID, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check generation history: %w", err)
	}
	return count > 0, nil
}

func ruleUpdates(rule *model.RecurrenceRule, expectedVersion int) map[string]interface{} {
	return map[string]interface{}{
		"status":             rule.Status,
		"last_generated_at":  rule.LastGeneratedAt,
		"next_generation_at": rule.NextGenerationAt,
		"rotation_index":     rule.RotationIndex,
		"version":            expectedVersion + 1,
	}
}
