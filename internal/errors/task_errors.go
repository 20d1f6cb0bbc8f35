package errors

import "net/http"

var (
	ErrTaskNotFound = &Exception{
		Message:    "task not found",
		StatusCode: http.StatusNotFound,
	}

	// ErrInvalidTaskID is a path id no stored task can have; handlers treat
	// it exactly like ErrTaskNotFound.
	ErrInvalidTaskID = &Exception{
		Message:    "invalid task id",
		StatusCode: http.StatusNotFound,
	}

	ErrInvalidPayload = &Exception{
		Message:    "invalid task payload",
		StatusCode: http.StatusBadRequest,
	}

	ErrInvalidCompletedAt = &Exception{
		Message:    "completed_at is not a valid timestamp",
		StatusCode: http.StatusBadRequest,
	}
)

// IsMissing reports whether err means the requested task does not exist.
func IsMissing(err error) bool {
	return Is(err, ErrTaskNotFound) || Is(err, ErrInvalidTaskID)
}
