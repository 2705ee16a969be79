package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
	RememberMe bool   `json:"remember_me"`
	IP         string `json:"-"`
	UserAgent  string `json:"-"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo describes the authenticated admin in responses.
type UserInfo struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}

// JWTClaims is the access token payload. The identifier claim is "id";
// older tokens in the wild used "user_id", which the client normalizes.
type JWTClaims struct {
	UserID   int64    `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}
