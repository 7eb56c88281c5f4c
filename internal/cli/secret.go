package cli

import (
	"errors"
	"fmt"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/keyring"
)

var secretNames = map[string]string{
	"smtp":   constants.SecretSMTPPassword,
	"twilio": constants.SecretTwilioToken,
	"gemini": constants.SecretGeminiKey,
}

func resolveSecretName(name string) (string, error) {
	if resolved, ok := secretNames[name]; ok {
		return resolved, nil
	}
	return "", fmt.Errorf("unknown secret %q (expected smtp, twilio, or gemini)", name)
}

// SecretSetCmd stores a server credential in the OS keyring.
type SecretSetCmd struct {
	Name  string `arg:"" help:"Secret name (smtp|twilio|gemini)."`
	Value string `arg:"" help:"Secret value."`
}

func (c *SecretSetCmd) Run(ctx *Context) error {
	name, err := resolveSecretName(c.Name)
	if err != nil {
		return err
	}
	if err := keyring.SetSecret(name, c.Value); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	fmt.Printf("✓ Secret %q stored in OS keyring\n", c.Name)
	return nil
}

// SecretDeleteCmd removes a server credential from the OS keyring.
type SecretDeleteCmd struct {
	Name string `arg:"" help:"Secret name (smtp|twilio|gemini)."`
}

func (c *SecretDeleteCmd) Run(ctx *Context) error {
	name, err := resolveSecretName(c.Name)
	if err != nil {
		return err
	}
	if err := keyring.DeleteSecret(name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no secret %q found in keyring", c.Name)
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	fmt.Printf("✓ Secret %q removed from OS keyring\n", c.Name)
	return nil
}
