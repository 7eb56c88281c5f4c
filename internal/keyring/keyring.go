package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the name
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetSecret retrieves a named secret (SMTP password, Twilio auth token,
// Gemini API key) from the OS keyring.
func GetSecret(name string) (string, error) {
	value, err := keyring.Get(constants.AppName, name)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// SetSecret stores a named secret in the OS keyring.
func SetSecret(name, value string) error {
	if value == "" {
		return errors.New("secret value cannot be empty")
	}
	if err := keyring.Set(constants.AppName, name, value); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// DeleteSecret removes a named secret from the OS keyring.
func DeleteSecret(name string) error {
	if err := keyring.Delete(constants.AppName, name); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}
