package runlock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquire_SecondFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := Acquire(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire = %v, want ErrLocked", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after Release: %v", err)
	}
	again.Release()
}

func TestAcquire_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "leads.db.lock")
	if _, err := Acquire(path); err == nil {
		t.Fatal("Acquire in missing directory: expected error")
	}
}
