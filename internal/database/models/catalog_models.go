package models

import "time"

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	StoreID     string `gorm:"type:varchar(36);index:idx_product_store_code,unique;not null"`
	ProductCode string `gorm:"type:varchar(32);index:idx_product_store_code,unique;not null"`
	ProductName string `gorm:"type:varchar(128);not null"`
	Description *string `gorm:"type:text"`
	Category    *string `gorm:"type:varchar(64)"`
	BasePrice   string `gorm:"type:varchar(32);not null"`
	CostPrice   string `gorm:"type:varchar(32);not null;default:'0.00'"`
	ImageURL    *string `gorm:"type:varchar(256)"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Store        *Store               `gorm:"foreignKey:StoreID"`
	Sizes        []ProductSize        `gorm:"foreignKey:ProductID"`
	AddOns       []ProductAddOn       `gorm:"foreignKey:ProductID"`
	Axes         []VariantAxis        `gorm:"foreignKey:ProductID"`
	Combinations []VariantCombination `gorm:"foreignKey:ProductID"`
}

// ProductSize is a named size with a price adjustment on top of the base
// price, used by food-service stores (menu mode).
type ProductSize struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	ProductID       int64  `gorm:"index;not null"`
	SizeName        string `gorm:"type:varchar(64);not null"`
	PriceAdjustment string `gorm:"type:varchar(32);not null;default:'0.00'"`
	Position        int32  `gorm:"not null;default:0"`
	CreatedAt       time.Time
}

type ProductAddOn struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ProductID int64  `gorm:"index;not null"`
	AddOnName string `gorm:"type:varchar(64);not null"`
	Price     string `gorm:"type:varchar(32);not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

type VariantAxis struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ProductID int64  `gorm:"index:idx_axis_product_name,unique;not null"`
	AxisName  string `gorm:"type:varchar(64);index:idx_axis_product_name,unique;not null"`
	Position  int32  `gorm:"not null;default:0"`
	CreatedAt time.Time

	Values []VariantAxisValue `gorm:"foreignKey:AxisID"`
}

type VariantAxisValue struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AxisID    int64  `gorm:"index;not null"`
	Value     string `gorm:"type:varchar(64);not null"`
	Position  int32  `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// VariantCombination holds the independently-entered state of one cell in the
// product's variant matrix. CombinationKey is the ordered join of the chosen
// axis values and is unique per product.
type VariantCombination struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	ProductID      int64   `gorm:"index:idx_comb_product_key,unique;not null"`
	CombinationKey string  `gorm:"type:varchar(256);index:idx_comb_product_key,unique;not null"`
	SelectionsJSON string  `gorm:"type:text;not null"`
	SKU            *string `gorm:"type:varchar(64)"`
	StockQuantity  int32   `gorm:"not null;default:0"`
	SafetyStock    int32   `gorm:"not null;default:0"`
	SalePrice      *string `gorm:"type:varchar(32)"`
	CostPrice      *string `gorm:"type:varchar(32)"`
	ImageURL       *string `gorm:"type:varchar(256)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
