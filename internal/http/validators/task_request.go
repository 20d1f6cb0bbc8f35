package validators

import (
	"strings"
	"time"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

var completedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCompletedAt returns nil for an empty value, which marks the task as
// incomplete. Timestamps without a zone are read as UTC.
func ParseCompletedAt(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range completedAtLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			ts = ts.UTC()
			return &ts, nil
		}
	}

	return nil, apperrors.ErrInvalidCompletedAt
}

func ValidateTaskRequest(r *dto.TaskRequestData) (*time.Time, error) {
	return ParseCompletedAt(r.CompletedAt)
}
