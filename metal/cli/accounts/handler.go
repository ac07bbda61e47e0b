package accounts

import (
	"fmt"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/metal/env"
	"github.com/webfolio/api/pkg/cli"
	"github.com/webfolio/api/pkg/portal"
)

// Handler bootstraps privileged accounts from the terminal.
type Handler struct {
	users *repository.Users
	env   *env.Environment
}

func MakeHandler(db *database.Connection, environment *env.Environment) (*Handler, error) {
	if db == nil || environment == nil {
		return nil, fmt.Errorf("accounts handler: missing database connection or environment")
	}

	return &Handler{
		users: &repository.Users{DB: db},
		env:   environment,
	}, nil
}

// CreateAdmin registers an account with the admin role. Existing usernames or
// emails are rejected by the repository.
func (h *Handler) CreateAdmin(username, email, password string) error {
	hashed, err := portal.NewPassword(password)
	if err != nil {
		return fmt.Errorf("could not hash the given password: %w", err)
	}

	user, err := h.users.Create(database.UsersAttrs{
		Username:     username,
		Email:        email,
		PasswordHash: hashed.GetHash(),
		Role:         database.AdminRole,
	})

	if err != nil {
		return err
	}

	cli.Successln("\n  The admin account was created successfully.")
	cli.Magentaln(fmt.Sprintf("  > Username: %s", user.Username))
	cli.Cyanln(fmt.Sprintf("  > Email   : %s", user.Email))
	cli.Cyanln(fmt.Sprintf("  > UUID    : %s", user.UUID))
	fmt.Println(" ")

	return nil
}
