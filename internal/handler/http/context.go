package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

func principalFromRequest(r *http.Request) (auth.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return auth.PrincipalFromClaims(claims), nil
}

// employeeIDFromToken returns the employee bound to the caller's token.
func employeeIDFromToken(r *http.Request) (string, error) {
	p, err := principalFromRequest(r)
	if err != nil {
		return "", err
	}
	if !p.HasEmployee() {
		return "", auth.ErrEmployeeRequired
	}
	return p.EmployeeID, nil
}

// resolveEmployeeID picks the employee an action applies to. Admins may act on
// behalf of any employee; everyone else acts as themselves.
func resolveEmployeeID(r *http.Request, requested string) (string, error) {
	p, err := principalFromRequest(r)
	if err != nil {
		return "", err
	}
	if requested == "" || requested == p.EmployeeID {
		if !p.HasEmployee() {
			return "", auth.ErrEmployeeRequired
		}
		return p.EmployeeID, nil
	}
	if !p.IsAdmin {
		return "", auth.ErrAdminPrivilegeRequired
	}
	return requested, nil
}

// decodeOptionalJSON decodes the body into v. An empty body leaves v untouched.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
