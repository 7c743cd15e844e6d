package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		wantErr  error
	}{
		{"ok", "alice", "secret", nil},
		{"trimmed ok", "  alice ", " secret ", nil},
		{"blank user", "   ", "secret", ErrMissingFields},
		{"blank password", "alice", "", ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ValidateLogin(tt.user, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Credentials{Username: "alice", Password: "secret"}, c)
		})
	}
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name                    string
		user, password, confirm string
		wantErr                 error
	}{
		{"ok", "bob", "pw", "pw", nil},
		{"confirm trimmed", "bob", "pw", " pw ", nil},
		{"missing confirm", "bob", "pw", "", ErrMissingFields},
		{"missing user", "", "pw", "pw", ErrMissingFields},
		{"mismatch", "bob", "pw", "px", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRegister(tt.user, tt.password, tt.confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMissingFieldsCheckedBeforeMismatch(t *testing.T) {
	_, err := ValidateRegister("bob", "", "x")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Please fill in all fields!", Message(ErrMissingFields))
	assert.Equal(t, "Passwords do not match!", Message(ErrPasswordMismatch))
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "other", Message(errors.New("other")))
}
