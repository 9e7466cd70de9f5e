package project

import (
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
)

// Project is a work order employees punch against. Only the metadata the
// attendance engine needs is loaded here.
type Project struct {
	ID           string
	Name         string
	CompanyID    string
	TrackingMode tracking.Mode // empty when the project never picked one
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	CompanyName *string
}
