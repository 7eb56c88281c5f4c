package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
)

func TestSetAndGetSecret(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSecret(constants.SecretSMTPPassword, "hunter2"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}

	value, err := GetSecret(constants.SecretSMTPPassword)
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if value != "hunter2" {
		t.Errorf("GetSecret = %q, want %q", value, "hunter2")
	}
}

func TestSetSecretEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSecret(constants.SecretTwilioToken, ""); err == nil {
		t.Error("SetSecret with an empty value should fail")
	}
}

func TestGetSecretNotFound(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetSecret("never-stored"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSecret(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSecret(constants.SecretGeminiKey, "key"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}
	if err := DeleteSecret(constants.SecretGeminiKey); err != nil {
		t.Fatalf("DeleteSecret failed: %v", err)
	}
	if err := DeleteSecret(constants.SecretGeminiKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a deleted secret, got %v", err)
	}
}
