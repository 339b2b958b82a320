package auth

import (
	"strings"
)

const (
	maxEmailLength    = 50
	minPasswordLength = 8
)

func validateEmail(email string) *Error {
	email = strings.TrimSpace(email)
	if email == "" {
		return validationError("email is required")
	}
	if len(email) > maxEmailLength {
		return validationError("email must be less than 50 characters")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return validationError("invalid email format")
	}
	return nil
}

// ValidateRegisterInput checks the registration payload shape. Role may be
// empty (defaults to user) but must otherwise be a known value.
func ValidateRegisterInput(in RegisterInput) *Error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return validationError("password is required")
	}
	if len(in.Password) < minPasswordLength {
		return validationError("password must be at least 8 characters long")
	}
	if in.Role != "" && !in.Role.Valid() {
		return validationError("role must be either 'user' or 'admin'")
	}
	return nil
}

// ValidateLoginInput checks the login payload shape. It deliberately says
// nothing about whether the account exists.
func ValidateLoginInput(in LoginInput) *Error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return validationError("password is required")
	}
	return nil
}
