package auth

import (
	"strings"

	"github.com/guardforce/workforce-management/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeInvalidEmail)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("email is malformed", internal.ErrCodeInvalidEmail)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshDTO) Validate() error {
	if dto.RefreshToken == "" {
		return internal.NewValidationError("refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
