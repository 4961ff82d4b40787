package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !auth.PrincipalFromClaims(claims).IsAdmin {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeOnly rejects tokens that are not bound to an employee.
func EmployeeOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !auth.PrincipalFromClaims(claims).HasEmployee() {
			response.HandleError(w, auth.ErrEmployeeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
