package config

import (
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db   *gorm.DB
	seed SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, seed SeedConfig) *Seeder {
	return &Seeder{db: db, seed: seed}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminLibrarian(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminLibrarian creates the bootstrap admin when no admin exists yet
func (s *Seeder) seedAdminLibrarian() error {
	var count int64
	if err := s.db.Model(&models.Librarian{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Librarian{
		Username: s.seed.AdminUsername,
		Email:    s.seed.AdminEmail,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin librarian created: %s", admin.Username)
	return nil
}
