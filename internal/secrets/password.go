// Package secrets keeps the SMTP password in the OS keychain so it does not
// have to live in config.yaml or the environment.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups leadbrief's entries in the OS keychain.
const KeyringService = "leadbrief"

// ErrNotFound is returned when no password is stored for an account.
var ErrNotFound = errors.New("smtp password not found in keychain")

// SMTPAccount is the keychain account name for an SMTP login.
func SMTPAccount(username, host string) string {
	return fmt.Sprintf("leadbrief:smtp:%s@%s", username, host)
}

func GetSMTPPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read keychain: %w", err)
	}
	if strings.TrimSpace(pw) == "" {
		return "", ErrNotFound
	}
	return pw, nil
}

func SetSMTPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteSMTPPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
