package models

import "github.com/golang-jwt/jwt"

// Claims is the JWT payload carried on authenticated requests. Only the user
// id matters to this service; auth flows themselves live elsewhere.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.StandardClaims
}
