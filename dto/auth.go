package dto

import "strings"

const LoginRequiredMessage = "Email and password are required"

type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"admin@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret"`
}

func (l *LoginRequest) Normalize() {
	l.Email = strings.TrimSpace(l.Email)
}

func (l LoginRequest) Validate() error {
	return validateStructWithMessage(l, LoginRequiredMessage)
}

// ParseLogin decodes a login body. Missing fields give a 400 naming both.
func ParseLogin(raw []byte) (*LoginRequest, error) {
	var req LoginRequest
	if err := decodeStrict(raw, &req); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type SessionStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}
