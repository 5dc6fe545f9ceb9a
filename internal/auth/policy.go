// Package auth carries the request principal and the server-side policy
// checks performed before privileged actions. The role claim inside the JWT
// is a routing hint only; every check here goes back to the roles table.
package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plazoo-system/internal/database/models"
)

var ErrForbidden = errors.New("auth: action not allowed for this user")

const principalKey = "auth.principal"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// Policy answers authorization questions against the database.
type Policy interface {
	RequireAdmin(ctx context.Context, userID int64) error
	CanManageStore(ctx context.Context, userID int64, storeID string) error
}

type GormPolicy struct {
	db *gorm.DB
}

func NewGormPolicy(db *gorm.DB) *GormPolicy {
	return &GormPolicy{db: db}
}

func (p *GormPolicy) roleName(ctx context.Context, userID int64) (string, error) {
	var user models.User
	if err := p.db.WithContext(ctx).Preload("Role").First(&user, userID).Error; err != nil {
		return "", err
	}
	if user.IsBanned || !user.IsActive {
		return "", ErrForbidden
	}
	return user.Role.RoleName, nil
}

func (p *GormPolicy) RequireAdmin(ctx context.Context, userID int64) error {
	role, err := p.roleName(ctx, userID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// CanManageStore allows admins and the store's owner.
func (p *GormPolicy) CanManageStore(ctx context.Context, userID int64, storeID string) error {
	role, err := p.roleName(ctx, userID)
	if err != nil {
		return err
	}
	if role == models.RoleAdmin {
		return nil
	}
	var store models.Store
	if err := p.db.WithContext(ctx).First(&store, "id = ?", storeID).Error; err != nil {
		return err
	}
	if store.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}
