package http

import (
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/jwt"
)

// currentEmployeeID returns the employee bound to the access token
func currentEmployeeID(r *http.Request) (string, error) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		return "", err
	}
	if claims.EmployeeID == "" {
		return "", auth.ErrEmployeeRequired
	}
	return claims.EmployeeID, nil
}

// targetEmployeeID resolves whose records a request reads. Admins may name
// any employee with ?employee_id=; everyone else only reads their own.
func targetEmployeeID(r *http.Request) (string, error) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		return "", err
	}

	requested := r.URL.Query().Get("employee_id")
	if requested == "" || requested == claims.EmployeeID {
		if claims.EmployeeID == "" {
			return "", auth.ErrEmployeeRequired
		}
		return claims.EmployeeID, nil
	}

	if !claims.IsAdmin {
		return "", auth.ErrAdminPrivilegeRequired
	}
	return requested, nil
}

// optionalQuery returns nil for an absent query parameter
func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
