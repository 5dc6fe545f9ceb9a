package models

import "time"

type Store struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	Slug           string `gorm:"type:varchar(64);uniqueIndex;not null"`
	StoreName      string `gorm:"type:varchar(128);not null"`
	Description    *string `gorm:"type:text"`
	OwnerID        int64  `gorm:"index;not null"`
	PrimaryColor   *string `gorm:"type:varchar(16)"`
	SecondaryColor *string `gorm:"type:varchar(16)"`
	LogoURL        *string `gorm:"type:varchar(256)"`
	IsFoodService  bool   `gorm:"not null;default:false"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner    *User     `gorm:"foreignKey:OwnerID"`
	Products []Product `gorm:"foreignKey:StoreID"`
}
