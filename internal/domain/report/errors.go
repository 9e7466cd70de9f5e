package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrDateRangeTooLarge = errors.New("date range must not exceed 92 days")
)
