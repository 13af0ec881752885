package fabricated

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-service/internal/domain/user"
	apperrors "user-service/pkg/errors"
)

func setupRepo(t *testing.T) *UserRepository {
	return NewUserRepository(zaptest.NewLogger(t))
}

func TestUserRepository_List(t *testing.T) {
	repo := setupRepo(t)

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	assert.Equal(t, "John Doe", first[0].Name)
	assert.Equal(t, "john@example.com", first[0].Email)
	assert.Equal(t, "Jane Smith", first[1].Name)
	assert.Equal(t, "jane@example.com", first[1].Email)

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, second[0].ID, "ids are regenerated per call")
}

func TestUserRepository_GetByID(t *testing.T) {
	repo := setupRepo(t)

	t.Run("Sentinel", func(t *testing.T) {
		u, err := repo.GetByID(context.Background(), uuid.Nil)
		assert.Nil(t, u)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("Baseline", func(t *testing.T) {
		id := uuid.New()
		u, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: id, Name: BaselineName, Email: BaselineEmail}, u)
	})
}

func TestUserRepository_Create(t *testing.T) {
	repo := setupRepo(t)

	u := &domain.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "Alice", u.Name)

	err := repo.Create(context.Background(), nil)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindInternal, appErr.Kind)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Update(ctx, &domain.User{ID: uuid.New()}))
	assert.True(t, apperrors.IsNotFound(repo.Update(ctx, &domain.User{ID: uuid.Nil})))
	assert.Error(t, repo.Update(ctx, nil))

	assert.NoError(t, repo.Delete(ctx, uuid.New()))
	assert.True(t, apperrors.IsNotFound(repo.Delete(ctx, uuid.Nil)))
}
