package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/nutrigoal/internal/db"
	"github.com/terraincognita07/nutrigoal/internal/models"
)

// RunPromoteCommand grants the admin role, which unlocks reference data
// writes over the API.
func RunPromoteCommand(options db.Options, email string, out io.Writer) error {
	users, err := openUsers(options)
	if err != nil {
		return err
	}
	user, err := findUserByEmail(users, email)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		fmt.Fprintf(out, "%s is already an admin\n", user.Email)
		return nil
	}
	if err := users.UpdateRole(user.ID, models.RoleAdmin); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	fmt.Fprintf(out, "%s promoted to admin\n", user.Email)
	return nil
}

// RunDeleteUserCommand removes the account together with its goals, custom
// items and consumption history.
func RunDeleteUserCommand(options db.Options, email string, out io.Writer) error {
	users, err := openUsers(options)
	if err != nil {
		return err
	}
	user, err := findUserByEmail(users, email)
	if err != nil {
		return err
	}
	if err := users.DeleteAccount(user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	fmt.Fprintf(out, "%s deleted\n", user.Email)
	return nil
}
