package auth

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role the storefront issues tokens for.
const RoleAdmin = "admin"

// AdminClaims is the typed JWT handed to the admin dashboard.
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
