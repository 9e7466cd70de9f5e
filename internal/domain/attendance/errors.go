package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
)
