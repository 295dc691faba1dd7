package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/models"
	"github.com/terraincognita07/nutrigoal/internal/security"
	"github.com/terraincognita07/nutrigoal/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordIsStrong(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}
	for _, char := range password {
		if !strings.ContainsRune(string(security.PasswordCharset), char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		t.Fatalf("expected temporary password to pass strength rules, got %v", err)
	}
}

func newCLITestDatabase(t *testing.T) (db.Options, *db.UserRepository) {
	t.Helper()

	options := db.Options{Driver: db.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "nutrigoal-cli-test.db")}
	database, err := db.Open(options)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return options, db.NewUserRepository(database)
}

func createCLITestUser(t *testing.T, users *db.UserRepository, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash", Role: models.RoleUser}
	if err := users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRunResetPasswordCommand(t *testing.T) {
	t.Parallel()

	options, users := newCLITestDatabase(t)
	createCLITestUser(t, users, "reset@example.com")

	out := &bytes.Buffer{}
	if err := RunResetPasswordCommand(options, " Reset@Example.com ", out); err != nil {
		t.Fatalf("RunResetPasswordCommand() unexpected error: %v", err)
	}

	temporaryPassword := ""
	for _, line := range strings.Split(out.String(), "\n") {
		if value, found := strings.CutPrefix(line, "Temporary password: "); found {
			temporaryPassword = value
		}
	}
	if temporaryPassword == "" {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}

	updated, err := users.FindByNormalizedEmail("reset@example.com")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(temporaryPassword)) != nil {
		t.Fatal("expected stored hash to match the printed temporary password")
	}
}

func TestRunResetPasswordCommandRejectsUnknownUser(t *testing.T) {
	t.Parallel()

	options, _ := newCLITestDatabase(t)

	if err := RunResetPasswordCommand(options, "not-an-email", &bytes.Buffer{}); err == nil {
		t.Fatal("expected malformed email to be rejected")
	}
	if err := RunResetPasswordCommand(options, "missing@example.com", &bytes.Buffer{}); err == nil {
		t.Fatal("expected unknown user to be rejected")
	}
}
