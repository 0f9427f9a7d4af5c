package secrets

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSMTPPasswordRoundTrip(t *testing.T) {
	keyring.MockInit()
	account := SMTPAccount("bot@example.com", "smtp.example.com")

	if _, err := GetSMTPPassword(account); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Set = %v, want ErrNotFound", err)
	}
	if err := SetSMTPPassword(account, "hunter2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	pw, err := GetSMTPPassword(account)
	if err != nil || pw != "hunter2" {
		t.Fatalf("Get = %q, %v; want hunter2", pw, err)
	}
	if err := DeleteSMTPPassword(account); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := DeleteSMTPPassword(account); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestSMTPPassword_Validation(t *testing.T) {
	keyring.MockInit()
	if err := SetSMTPPassword("", "pw"); err == nil {
		t.Error("Set with empty account: expected error")
	}
	if err := SetSMTPPassword("acct", "  "); err == nil {
		t.Error("Set with blank password: expected error")
	}
	if _, err := GetSMTPPassword(" "); err == nil {
		t.Error("Get with blank account: expected error")
	}
}

func TestSMTPAccount(t *testing.T) {
	if got := SMTPAccount("me", "mail.example.com"); got != "leadbrief:smtp:me@mail.example.com" {
		t.Errorf("SMTPAccount = %q", got)
	}
}
