package config_test

import (
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_CreatesAdminOnce(t *testing.T) {
	db := testutil.NewDB(t)
	seed := config.SeedConfig{AdminUsername: "root", AdminPassword: "secret123", AdminEmail: "root@example.com"}

	require.NoError(t, config.NewSeeder(db, seed).Run())
	require.NoError(t, config.NewSeeder(db, seed).Run())

	var admins []models.Librarian
	require.NoError(t, db.Where("role = ?", domain.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "root", admins[0].Username)
	assert.True(t, admins[0].IsActive)
	assert.True(t, password.Verify("secret123", admins[0].Password))
}

func TestSeeder_SkipsWhenAdminExists(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Librarian(t, db, "boss", "pw123456", domain.RoleAdmin, true)

	seed := config.SeedConfig{AdminUsername: "root", AdminPassword: "secret123", AdminEmail: "root@example.com"}
	require.NoError(t, config.NewSeeder(db, seed).Run())

	var count int64
	require.NoError(t, db.Model(&models.Librarian{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeedSampleCatalog_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, config.SeedSampleCatalog(db))
	require.NoError(t, config.SeedSampleCatalog(db))

	var authors, categories, books, members int64
	require.NoError(t, db.Model(&models.Author{}).Count(&authors).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Book{}).Count(&books).Error)
	require.NoError(t, db.Model(&models.Member{}).Count(&members).Error)
	assert.EqualValues(t, 3, authors)
	assert.EqualValues(t, 3, categories)
	assert.EqualValues(t, 4, books)
	assert.EqualValues(t, 2, members)

	var kindred models.Book
	require.NoError(t, db.Preload("Categories").Where("isbn = ?", "9780807083697").First(&kindred).Error)
	assert.Len(t, kindred.Categories, 2)
}
