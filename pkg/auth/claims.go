package auth

import "github.com/golang-jwt/jwt/v5"

// RoleStaff is the only role the staff portal mints today.
const RoleStaff = "staff"

// StaffTokenPayload carries the values baked into a staff access token.
type StaffTokenPayload struct {
	Username string
	JTI      string
}

// StaffTokenClaims is the JWT claim set for staff portal sessions.
type StaffTokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
