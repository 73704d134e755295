package domain

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT payload issued at login and verified by the
// auth middleware. EmployeeID is what every leave operation keys on;
// UserID only identifies the login account.
type AccessClaims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
