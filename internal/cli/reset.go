package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/models"
	"github.com/terraincognita07/nutrigoal/internal/security"
	"github.com/terraincognita07/nutrigoal/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength   = 12
	temporaryPasswordAttempts = 32
)

func RunResetPasswordCommand(options db.Options, email string, out io.Writer) error {
	users, err := openUsers(options)
	if err != nil {
		return err
	}
	user, err := findUserByEmail(users, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

// generateTemporaryPassword draws until the result passes the same strength
// rules a user-chosen password must pass.
func generateTemporaryPassword(length int) (string, error) {
	return security.GeneratePassword(
		security.PasswordCharset,
		max(length, 8),
		temporaryPasswordAttempts,
		func(candidate string) bool { return services.ValidatePasswordStrength(candidate) == nil },
	)
}

func openUsers(options db.Options) (*db.UserRepository, error) {
	database, err := db.Open(options)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return db.NewUserRepository(database), nil
}

func findUserByEmail(users *db.UserRepository, email string) (models.User, error) {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", email)
	}

	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
