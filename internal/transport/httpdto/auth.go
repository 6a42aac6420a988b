package httpdto

import "my-chat/internal/domain/user"

// RegisterRequest is used for POST /registerUser.
type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Name     string `json:"name" form:"name" binding:"required"`
	PhoneNo  string `json:"phoneno" form:"phoneno" binding:"required"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    user.Profile `json:"user"`
}

// LoginRequest is used for POST /login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse echoes both tokens that are also set as cookies.
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	PhoneNo string `json:"phoneno"`
}
