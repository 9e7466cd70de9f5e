package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenExpired           = errors.New("token has expired")
	ErrEmployeeRequired       = errors.New("token is not bound to an employee")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
