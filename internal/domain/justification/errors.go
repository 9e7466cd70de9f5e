package justification

import "errors"

var (
	ErrJustificationNotFound = errors.New("justification not found")
	ErrJustificationExists   = errors.New("a justification already exists for this day")
	ErrAttachmentNotFound    = errors.New("justification has no attachment")
)
