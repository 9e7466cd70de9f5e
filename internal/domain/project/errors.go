package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectInactive = errors.New("project is not active")
)
