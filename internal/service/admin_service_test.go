package service

import (
	"context"
	"testing"

	"estate-hub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdminUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeAdminUserStore(users ...*models.User) *fakeAdminUserStore {
	f := &fakeAdminUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeAdminUserStore) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeAdminUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAdminUserStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeAdminUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakePropertyCounter struct {
	count int64
}

func (f *fakePropertyCounter) Count(_ context.Context) (int64, error) {
	return f.count, nil
}

func TestDeleteUser(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Name: "Admin", Role: models.UserRoleAdmin}
	member := &models.User{ID: uuid.New(), Name: "Member", Role: models.UserRoleUser}
	store := newFakeAdminUserStore(admin, member)
	svc := NewAdminService(store, &fakePropertyCounter{}, zap.NewNop())

	t.Run("unknown user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), admin.ID, uuid.New())
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("self delete rejected", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
		require.ErrorIs(t, err, ErrForbidden)
		_, err = store.GetByID(context.Background(), admin.ID)
		assert.NoError(t, err)
	})

	t.Run("removes the account", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, member.ID))
		_, err := store.GetByID(context.Background(), member.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStats(t *testing.T) {
	store := newFakeAdminUserStore(
		&models.User{ID: uuid.New()},
		&models.User{ID: uuid.New()},
	)
	svc := NewAdminService(store, &fakePropertyCounter{count: 7}, zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(7), stats.Properties)
}
