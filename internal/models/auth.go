package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the reviewer identity inside access tokens.
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
