package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"rolodex/internal/cache"
	"rolodex/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))
	return db
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_CacheAside(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Exactly one DB round trip is expected: the second read is served
	// from the cache.
	rows := sqlmock.NewRows([]string{"id", "username", "email", "confirmed"}).
		AddRow(5, "cached", "cached@example.com", true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(5, 1).
		WillReturnRows(rows)

	first, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(5)))

	second, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, first.Username, second.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "testuser", "test@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("test@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "test@example.com")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("Not Found Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("missing@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("test@example.com", 1).
			WillReturnError(errors.New("connection timeout"))

		user, err := repo.GetByEmail(ctx, "test@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateConflict(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	dupEmail := &models.User{Username: "other", Email: "jane@example.com", Password: "hash"}
	err := repo.Create(ctx, dupEmail)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	dupUsername := &models.User{Username: "jane", Email: "jane2@example.com", Password: "hash"}
	err = repo.Create(ctx, dupUsername)
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_ConfirmEmail(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.False(t, user.Confirmed)

	require.NoError(t, repo.ConfirmEmail(ctx, "jane@example.com"))

	reloaded, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, reloaded.Confirmed)

	// Idempotent: confirming again succeeds.
	assert.NoError(t, repo.ConfirmEmail(ctx, "jane@example.com"))

	// Unknown email reports not-found.
	err = repo.ConfirmEmail(ctx, "nobody@example.com")
	assert.Error(t, err)
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	updated, err := repo.UpdateAvatar(ctx, user.ID, "https://cdn.example.com/jane.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/jane.png", updated.Avatar)

	_, err = repo.UpdateAvatar(ctx, 999, "https://cdn.example.com/x.png")
	assert.Error(t, err)
}

func TestUserRepository_DeleteCascadesContacts(t *testing.T) {
	db := setupSqliteDB(t)
	// sqlite enforces FK cascades only with the pragma enabled.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	userRepo := NewUserRepository(db)
	contactRepo := NewContactRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, userRepo.Create(ctx, user))
	require.NoError(t, contactRepo.Create(ctx, &models.Contact{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", PhoneNumber: "+442012345678",
		UserID: user.ID,
	}))

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Contact{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}
