package repository

import (
	"context"
	"testing"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGetByLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)
	ctx := context.Background()

	u := testutil.NewTestUser("marta", domain.RoleTechnician)
	require.NoError(t, repo.Create(ctx, u))

	fetched, err := repo.GetByLogin(ctx, " MARTA ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)
	assert.Equal(t, domain.RoleTechnician, fetched.Role)
	assert.True(t, fetched.Active)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_DuplicateLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser("ana", domain.RoleSeller)))
	err := repo.Create(ctx, testutil.NewTestUser("ana", domain.RoleAdmin))
	assert.ErrorIs(t, err, domain.ErrDuplicateLogin)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
