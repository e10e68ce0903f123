package recurrence

import "errors"

var (
	// ErrInvalidFrequencyConfig means the frequency or its custom predicates
	// are malformed. Surfaced at rule create/edit time, never during a tick.
	ErrInvalidFrequencyConfig = errors.New("invalid frequency config")

	// ErrNoFeasibleDate means the custom predicates can never be jointly
	// satisfied within the lookahead window.
	ErrNoFeasibleDate = errors.New("no feasible date for custom frequency")

	// ErrEmptyRotation is returned by NextAssignee when the rotation has no
	// members. Callers must check before invoking; there is no fallback
	// assignee.
	ErrEmptyRotation = errors.New("rotation is empty")
)
