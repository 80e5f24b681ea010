package main

import (
	"errors"
	"fmt"

	"postcraft/pkg/config"
	"postcraft/pkg/database"
	"postcraft/pkg/logger"
	"postcraft/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	email       string
	displayName string
	password    string
	role        models.UserRole
}

type seedTemplate struct {
	brandName string
	slogan    string
	color     string
}

var (
	seedUsers = []seedUser{
		{"admin@postcraft.local", "Admin", "password123", models.RoleAdmin},
		{"member@postcraft.local", "Member", "password123", models.RoleMember},
	}
	seedTemplates = []seedTemplate{
		{"Acme", "Build it better", "#FF0000"},
		{"Globex", "", ""},
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

// seedDatabase is idempotent: existing users and templates are reused.
func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	userIDs := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		id, err := ensureUser(db, u, log)
		if err != nil {
			return err
		}
		userIDs[u.email] = id
	}

	templateIDs := make([]string, 0, len(seedTemplates))
	for _, tpl := range seedTemplates {
		id, err := ensureTemplate(db, tpl, userIDs[seedUsers[0].email], log)
		if err != nil {
			return err
		}
		templateIDs = append(templateIDs, id)
	}

	// The member only sees the first template.
	assignment := &models.UserBrandTemplate{
		UserID:          userIDs["member@postcraft.local"],
		BrandTemplateID: templateIDs[0],
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to assign template: %w", err)
	}
	log.Info("Assigned template %s to member", templateIDs[0])
	return nil
}

func ensureUser(db *gorm.DB, u seedUser, log *logger.Logger) (string, error) {
	var existing models.User
	err := db.Where("email = ?", u.email).First(&existing).Error
	if err == nil {
		log.Info("User %s already exists, skipping", u.email)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up user %s: %w", u.email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       u.email,
		DisplayName: u.displayName,
		Password:    string(hashed),
		Role:        u.role,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", u.email, err)
	}
	log.Info("Created user: %s (%s)", user.DisplayName, user.Email)
	return user.ID, nil
}

func ensureTemplate(db *gorm.DB, tpl seedTemplate, adminID string, log *logger.Logger) (string, error) {
	var existing models.BrandTemplate
	err := db.Where("brand_name = ?", tpl.brandName).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up template %s: %w", tpl.brandName, err)
	}

	record := &models.BrandTemplate{
		BrandName: tpl.brandName,
		Slogan:    tpl.slogan,
		Color:     tpl.color,
		CreatedBy: adminID,
	}
	if err := db.Create(record).Error; err != nil {
		return "", fmt.Errorf("failed to create template %s: %w", tpl.brandName, err)
	}
	log.Info("Created brand template: %s (%s)", record.BrandName, record.Color)
	return record.ID, nil
}
