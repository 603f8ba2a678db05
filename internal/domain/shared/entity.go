package shared

import "time"

// Timestamps holds the audit columns shared by persisted entities
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimestamps returns timestamps set to the current time
func NewTimestamps() Timestamps {
	now := Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp
func (t *Timestamps) Touch() {
	t.UpdatedAt = Now()
}
