package auth

// Principal is the caller identity carried by an access token.
type Principal struct {
	EmployeeID string
	IsAdmin    bool
}

// HasEmployee reports whether the token belongs to an employee.
func (p Principal) HasEmployee() bool {
	return p.EmployeeID != ""
}

// PrincipalFromClaims reads the access token claims. Missing claims yield
// zero values.
func PrincipalFromClaims(claims map[string]interface{}) Principal {
	var p Principal
	if id, ok := claims["employee_id"].(string); ok {
		p.EmployeeID = id
	}
	if admin, ok := claims["is_admin"].(bool); ok {
		p.IsAdmin = admin
	}
	return p
}
