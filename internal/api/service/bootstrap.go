package service

import (
	"context"
	"fmt"

	"github.com/custdesk/custdesk/internal/api/domain"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/pkg/cryptox"
	"github.com/custdesk/custdesk/pkg/idx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// SeedAdmin creates the first admin account when the user table is empty.
// With no configured email it does nothing; with a configured email and no
// password it generates one and logs it once, so a fresh deployment is
// reachable without shipping a secret in the environment.
func SeedAdmin(ctx context.Context, st store.Store, email, password string) error {
	log := slogx.FromContext(ctx)

	empty, err := st.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !empty {
		return nil
	}
	if email == "" {
		log.Warn("user table empty and no seed admin configured")
		return nil
	}

	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	return st.WithTx(ctx, func(tx store.Tx) error {
		role, err := tx.Roles().GetRoleByName(ctx, domain.RoleAdmin)
		if err != nil {
			return fmt.Errorf("lookup admin role: %w", err)
		}

		user := domain.User{
			ID:           idx.New().String(),
			Email:        email,
			Name:         "Administrator",
			PasswordHash: hash,
			RoleID:       role.ID,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create seed admin: %w", err)
		}

		if generated {
			log.Info("seeded admin account with generated password",
				"email", email, "password", password)
		} else {
			log.Info("seeded admin account", "email", email)
		}
		return nil
	})
}
