package punch

import "context"

// PunchService defines the punch-time flow: resolve the next punch and record it
type PunchService interface {
	// NextExpected resolves the next punch kind for a project day
	NextExpected(ctx context.Context, req NextPunchRequest) (NextPunchResponse, error)

	// Punch records the next expected punch, rejecting it once the flow is complete
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// ListMyPunches lists the punches of an employee for one day
	ListMyPunches(ctx context.Context, req MyPunchesRequest) ([]PunchResponse, error)

	// List returns raw punch records across employees, newest first
	List(ctx context.Context, req ListPunchesRequest) ([]PunchResponse, error)

	// ListTrackingModes lists the catalogued tracking modes
	ListTrackingModes(ctx context.Context) []TrackingModeResponse
}
