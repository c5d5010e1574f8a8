package validator

import (
	"errors"
	"regexp"
	"strings"

	"foodorder/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type authValidator struct{}

func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

func (v *authValidator) ValidateRegister(name, email, password string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 60 {
		return errors.New("name must be 2-60 characters")
	}
	if !isEmailLike(email) {
		return errors.New("invalid email")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

func (v *authValidator) ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

func isEmailLike(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}
