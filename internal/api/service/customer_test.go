package service_test

import (
	"context"
	"testing"

	"github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/stretchr/testify/require"
)

func TestCustomerServiceCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := service.NewCustomerService(st)

	t.Run("empty list", func(t *testing.T) {
		customers, err := svc.List(ctx)
		require.NoError(t, err)
		require.Empty(t, customers)
	})

	var id string
	t.Run("create", func(t *testing.T) {
		c, err := svc.Create(ctx, service.CustomerInput{
			Name:  "  Acme Pty Ltd ",
			Email: "Billing@Acme.Example ",
			Phone: "+61 2 5550 1234",
		})
		require.NoError(t, err)
		require.NotEmpty(t, c.ID)
		require.Equal(t, "Acme Pty Ltd", c.Name)
		require.Equal(t, "billing@acme.example", c.Email)
		require.False(t, c.CreatedAt.IsZero())
		id = c.ID
	})

	t.Run("get", func(t *testing.T) {
		c, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Acme Pty Ltd", c.Name)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, service.CustomerInput{
			Name:  "Other",
			Email: "billing@acme.example",
		})
		require.ErrorIs(t, err, service.ErrDuplicateEmail)
	})

	t.Run("update", func(t *testing.T) {
		c, err := svc.Update(ctx, id, service.CustomerInput{
			Name:  "Acme Holdings",
			Email: "accounts@acme.example",
			Phone: "",
		})
		require.NoError(t, err)
		require.Equal(t, "Acme Holdings", c.Name)
		require.Equal(t, "accounts@acme.example", c.Email)
		require.Empty(t, c.Phone)
	})

	t.Run("update missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, "01J00000000000000000000000", service.CustomerInput{
			Name:  "Ghost",
			Email: "ghost@example.com",
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, id))

		_, err := svc.Get(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, svc.Delete(ctx, id), store.ErrNotFound)
	})
}

func TestCustomerServiceValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := service.NewCustomerService(st)

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.Create(ctx, service.CustomerInput{Email: "a@b.example"})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.Create(ctx, service.CustomerInput{Name: "No Email"})
		require.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("not an email", func(t *testing.T) {
		_, err := svc.Create(ctx, service.CustomerInput{Name: "Bad Email", Email: "nope"})
		require.ErrorIs(t, err, service.ErrValidation)
	})
}
