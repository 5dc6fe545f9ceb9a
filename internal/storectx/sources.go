package storectx

import (
	"context"

	"gorm.io/gorm"

	"plazoo-system/internal/database/models"
)

// GormRoleSource resolves the viewer's role from the roles table. The JWT
// role claim is only a hint; this is the server-side answer.
type GormRoleSource struct {
	db *gorm.DB
}

func NewGormRoleSource(db *gorm.DB) *GormRoleSource {
	return &GormRoleSource{db: db}
}

func (s *GormRoleSource) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.Role.RoleName == models.RoleAdmin, nil
}

// GormStoreSource lists active stores from the database.
type GormStoreSource struct {
	db *gorm.DB
}

func NewGormStoreSource(db *gorm.DB) *GormStoreSource {
	return &GormStoreSource{db: db}
}

func (s *GormStoreSource) ListOwned(ctx context.Context, userID int64) ([]Store, error) {
	var stores []models.Store
	if err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return toContextStores(stores), nil
}

func (s *GormStoreSource) ListAll(ctx context.Context) ([]Store, error) {
	var stores []models.Store
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return toContextStores(stores), nil
}

func toContextStores(stores []models.Store) []Store {
	out := make([]Store, 0, len(stores))
	for _, st := range stores {
		out = append(out, Store{
			ID:             st.ID,
			Slug:           st.Slug,
			Name:           st.StoreName,
			PrimaryColor:   st.PrimaryColor,
			SecondaryColor: st.SecondaryColor,
			LogoURL:        st.LogoURL,
			IsFoodService:  st.IsFoodService,
		})
	}
	return out
}
