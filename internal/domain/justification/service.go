package justification

import (
	"context"
	"io"
)

// JustificationService defines admin operations on absence justifications
type JustificationService interface {
	Create(ctx context.Context, req CreateJustificationRequest) (JustificationResponse, error)
	Update(ctx context.Context, req UpdateJustificationRequest) (JustificationResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (JustificationResponse, error)
	List(ctx context.Context, filter JustificationFilter) ([]JustificationResponse, error)

	// OpenAttachment streams the stored attachment and returns its original file name
	OpenAttachment(ctx context.Context, id string) (io.ReadCloser, string, error)
}
