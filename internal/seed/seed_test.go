package seed

import (
	"testing"

	"rolodex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 5, ContactsPerUser: 3, ShouldClean: true}))

	var userCount, contactCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Contact{}).Count(&contactCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 15, contactCount)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.True(t, user.Confirmed, "seeded users can log in without confirmation mail")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DemoPassword)))

	var orphans int64
	require.NoError(t, db.Model(&models.Contact{}).Where("user_id = 0").Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestSeederClearAll(t *testing.T) {
	db := setupDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 2, ContactsPerUser: 2}))
	require.NoError(t, s.ClearAll())

	var userCount, contactCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Contact{}).Count(&contactCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, contactCount)
}
