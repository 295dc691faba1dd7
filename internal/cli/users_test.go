package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/terraincognita07/nutrigoal/internal/models"
	"gorm.io/gorm"
)

func TestRunPromoteCommand(t *testing.T) {
	t.Parallel()

	options, users := newCLITestDatabase(t)
	user := createCLITestUser(t, users, "promote@example.com")

	if err := RunPromoteCommand(options, user.Email, &bytes.Buffer{}); err != nil {
		t.Fatalf("RunPromoteCommand() unexpected error: %v", err)
	}
	promoted, err := users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Fatalf("expected role %q, got %q", models.RoleAdmin, promoted.Role)
	}

	out := &bytes.Buffer{}
	if err := RunPromoteCommand(options, user.Email, out); err != nil {
		t.Fatalf("second RunPromoteCommand() unexpected error: %v", err)
	}
	if out.String() != "promote@example.com is already an admin\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunDeleteUserCommand(t *testing.T) {
	t.Parallel()

	options, users := newCLITestDatabase(t)
	user := createCLITestUser(t, users, "delete@example.com")

	if err := RunDeleteUserCommand(options, user.Email, &bytes.Buffer{}); err != nil {
		t.Fatalf("RunDeleteUserCommand() unexpected error: %v", err)
	}
	if _, err := users.FindByID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected deleted user lookup to fail with not found, got %v", err)
	}
}
