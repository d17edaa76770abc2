package config

import (
	"log"

	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedRoles ensures the closed role set exists. Registration resolves
// roles by name, so they must be present before the first request.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
		log.Printf("🌱 Role seeded: %s", name)
	}

	return nil
}

// SeedAdmin creates a bootstrap admin account when ADMIN_USERNAME and
// ADMIN_PASSWORD are set and no admin exists yet.
func SeedAdmin(db *gorm.DB) error {
	username := getEnv("ADMIN_USERNAME", "")
	plaintext := getEnv("ADMIN_PASSWORD", "")
	if username == "" || plaintext == "" {
		return nil
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Customer{}).Where("role_id = ?", role.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	admin := &models.Customer{
		Username: username,
		Password: hashed,
		FullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
		Email:    getEnv("ADMIN_EMAIL", "admin@localhost"),
		Age:      0,
		RoleID:   role.ID,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", admin.Username)
	return nil
}
