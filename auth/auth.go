// Package auth validates the demo login and registration forms.
// There is no account database: any complete login is accepted.
package auth

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFields is returned when any field is blank after trimming.
	ErrMissingFields = errors.New("auth: missing fields")

	// ErrPasswordMismatch is returned when the confirmation differs.
	ErrPasswordMismatch = errors.New("auth: passwords do not match")
)

// RegisteredMessage is shown by the success animation.
const RegisteredMessage = "Registration successful!"

// Message returns the alert text for a validation error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all fields!"
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match!"
	case err == nil:
		return ""
	}
	return err.Error()
}

// Credentials is a trimmed username/password pair.
type Credentials struct {
	Username string
	Password string
}

// ValidateLogin checks the login form.
func ValidateLogin(username, password string) (Credentials, error) {
	c := Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if c.Username == "" || c.Password == "" {
		return Credentials{}, ErrMissingFields
	}
	return c, nil
}

// ValidateRegister checks the registration form.
func ValidateRegister(username, password, confirm string) (Credentials, error) {
	confirm = strings.TrimSpace(confirm)
	c := Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if c.Username == "" || c.Password == "" || confirm == "" {
		return Credentials{}, ErrMissingFields
	}
	if c.Password != confirm {
		return Credentials{}, ErrPasswordMismatch
	}
	return c, nil
}
