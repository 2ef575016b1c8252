package reflection

import "errors"

var (
	ErrNoCommits          = errors.New("push has no commits")
	ErrInvalidRecordKey   = errors.New("repository name or commit id is empty after sanitizing")
	ErrReflectionNotFound = errors.New("reflection not found")
	ErrEmptyReflection    = errors.New("reflection text is required")
	ErrInvalidStatus      = errors.New("status must be completed or skipped")
	ErrNothingToSummarize = errors.New("no reflections to summarize")
	ErrSummaryUnavailable = errors.New("summary service is not configured")
)
