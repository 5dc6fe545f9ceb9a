package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"plazoo-system/internal/database/models"
)

func NewConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Fatal("DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductSize{},
		&models.ProductAddOn{},
		&models.VariantAxis{},
		&models.VariantAxisValue{},
		&models.VariantCombination{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartItemAddOn{},
		&models.OrderDocument{},
		&models.OrderItem{},
		&models.OrderItemAddOn{},
	)
}

// SeedRoles makes sure the two built-in roles exist before the first login.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{RoleName: models.RoleAdmin, AccessLevel: 100},
		{RoleName: models.RoleOwner, AccessLevel: 10},
	}
	for _, r := range roles {
		if err := db.Where("role_name = ?", r.RoleName).FirstOrCreate(&models.Role{}, r).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", r.RoleName, err)
		}
	}
	return nil
}
