package models

import "time"

const (
	CartStatusOpen      int32 = 0
	CartStatusCheckedOut int32 = 1
	CartStatusAbandoned int32 = 2
)

const (
	DiscountTypeNone    int32 = 0
	DiscountTypePercent int32 = 1
	DiscountTypeFixed   int32 = 2
)

const (
	ChannelOnline   int32 = 0
	ChannelInPerson int32 = 1
)

const (
	PaidStatusUnpaid int32 = 0
	PaidStatusPaid   int32 = 1
)

type Cart struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	StoreID           string `gorm:"type:varchar(36);index;not null"`
	ShopperID         *int64
	Status            int32  `gorm:"not null;default:0"`
	Subtotal          string `gorm:"type:varchar(32);default:'0.00'"`
	DiscountType      int32  `gorm:"not null;default:0"`
	DiscountValue     string `gorm:"type:varchar(32);default:'0.00'"`
	DiscountAmount    string `gorm:"type:varchar(32);default:'0.00'"`
	TotalAmount       string `gorm:"type:varchar(32);default:'0.00'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	CartItems []CartItem `gorm:"foreignKey:CartID"`
}

type CartItem struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	CartID           int64   `gorm:"not null;index"`
	ProductID        int64   `gorm:"not null"`
	SizeID           *int64
	CombinationKey   *string `gorm:"type:varchar(256)"`
	Quantity         int32   `gorm:"not null"`
	UnitPrice        string  `gorm:"type:varchar(32);not null"`
	DiscountType     int32   `gorm:"not null;default:0"`
	DiscountValue    string  `gorm:"type:varchar(32);default:'0.00'"`
	LineTotal        string  `gorm:"type:varchar(32);not null"`
	Notes            *string `gorm:"type:text"`
	CreatedAt        time.Time

	Product *Product        `gorm:"foreignKey:ProductID"`
	Size    *ProductSize    `gorm:"foreignKey:SizeID"`
	AddOns  []CartItemAddOn `gorm:"foreignKey:CartItemID"`
}

type CartItemAddOn struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	CartItemID int64  `gorm:"index;not null"`
	AddOnID    int64  `gorm:"not null"`
	Quantity   int32  `gorm:"not null"`
	UnitPrice  string `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time

	AddOn *ProductAddOn `gorm:"foreignKey:AddOnID"`
}

type OrderDocument struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	DocumentNumber string `gorm:"uniqueIndex;not null"`
	IdempotencyKey string `gorm:"type:varchar(64);uniqueIndex;not null"`
	StoreID        string `gorm:"type:varchar(36);index;not null"`
	ShopperID      *int64
	Channel        int32  `gorm:"not null;default:0"`
	OrderDate      *time.Time `gorm:"not null"`

	Subtotal       string `gorm:"type:varchar(32);not null"`
	DiscountAmount string `gorm:"type:varchar(32);not null"`
	TotalAmount    string `gorm:"type:varchar(32);not null"`
	PaidStatus     int32  `gorm:"not null"`
	PaymentMethod  *string `gorm:"type:varchar(64)"`

	Notes *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	OrderItems []OrderItem `gorm:"foreignKey:DocumentID"`
}

type OrderItem struct {
	ID                  int64   `gorm:"primaryKey;autoIncrement"`
	DocumentID          int64   `gorm:"index;not null"`
	ProductID           int64   `gorm:"not null"`
	SizeID              *int64
	CombinationKey      *string `gorm:"type:varchar(256)"`
	Quantity            int32   `gorm:"not null"`
	UnitPrice           string  `gorm:"type:varchar(32);not null"`
	PriceBeforeDiscount string  `gorm:"type:varchar(32);not null"`
	DiscountAmount      string  `gorm:"type:varchar(32);not null"`
	LineTotal           string  `gorm:"type:varchar(32);not null"`
	Notes               *string `gorm:"type:text"`
	CreatedAt           time.Time

	Product *Product         `gorm:"foreignKey:ProductID"`
	AddOns  []OrderItemAddOn `gorm:"foreignKey:OrderItemID"`
}

type OrderItemAddOn struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderItemID int64  `gorm:"index;not null"`
	AddOnID     int64  `gorm:"not null"`
	AddOnName   string `gorm:"type:varchar(64);not null"`
	Quantity    int32  `gorm:"not null"`
	UnitPrice   string `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time
}
