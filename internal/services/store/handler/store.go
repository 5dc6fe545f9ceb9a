package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"plazoo-system/internal/auth"
	"plazoo-system/internal/database/models"
	"plazoo-system/internal/storectx"
)

const (
	STORE_CACHE_PREFIX    = "store:"
	STOREFRONT_CACHE_KEY  = "store:front:"
	EventStoreCreated     = "store.created"
	EventStoreUpdated     = "store.updated"
	CACHE_TTL_SHORT       = 5 * time.Minute
	CACHE_TTL_MEDIUM      = 30 * time.Minute
)

type StoreHandler struct {
	db         *gorm.DB
	redis      *redis.Client
	policy     auth.Policy
	roles      storectx.RoleSource
	stores     storectx.StoreSource
	selections storectx.SelectionStore
}

func NewStoreHandler(db *gorm.DB, redisClient *redis.Client) *StoreHandler {
	return &StoreHandler{
		db:         db,
		redis:      redisClient,
		policy:     auth.NewGormPolicy(db),
		roles:      storectx.NewGormRoleSource(db),
		stores:     storectx.NewGormStoreSource(db),
		selections: storectx.NewRedisSelectionStore(redisClient),
	}
}

type CreateStoreRequest struct {
	Slug           string  `json:"slug" binding:"required"`
	StoreName      string  `json:"store_name" binding:"required"`
	Description    *string `json:"description,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	IsFoodService  bool    `json:"is_food_service"`
}

type UpdateStoreRequest struct {
	StoreName      *string `json:"store_name,omitempty"`
	Description    *string `json:"description,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	IsFoodService  *bool   `json:"is_food_service,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type SetContextRequest struct {
	StoreID string `json:"store_id" binding:"required"`
}

type storeResponse struct {
	ID             string  `json:"id"`
	Slug           string  `json:"slug"`
	StoreName      string  `json:"store_name"`
	Description    *string `json:"description,omitempty"`
	OwnerID        int64   `json:"owner_id"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	IsFoodService  bool    `json:"is_food_service"`
	IsActive       bool    `json:"is_active"`
}

func toStoreResponse(s models.Store) storeResponse {
	return storeResponse{
		ID:             s.ID,
		Slug:           s.Slug,
		StoreName:      s.StoreName,
		Description:    s.Description,
		OwnerID:        s.OwnerID,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		LogoURL:        s.LogoURL,
		IsFoodService:  s.IsFoodService,
		IsActive:       s.IsActive,
	}
}

func (h *StoreHandler) invalidateStoreCaches(ctx context.Context, slug string) {
	_ = h.redis.Del(ctx, STOREFRONT_CACHE_KEY+slug)
}

func (h *StoreHandler) publishStoreEvent(ctx context.Context, eventType string, store models.Store) {
	payload, err := json.Marshal(gin.H{
		"event_type": eventType,
		"store_id":   store.ID,
		"slug":       store.Slug,
		"timestamp":  time.Now(),
	})
	if err != nil {
		return
	}
	_ = h.redis.Publish(ctx, fmt.Sprintf("plazoo:events:%s", eventType), payload).Err()
	_ = h.redis.Publish(ctx, "plazoo:events:all", payload).Err()
}

func validHexColor(hex string) bool {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	for _, color := range []*string{req.PrimaryColor, req.SecondaryColor} {
		if color != nil && !validHexColor(*color) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Branding colors must be 6-digit hex strings"})
			return
		}
	}

	store := models.Store{
		ID:             uuid.NewString(),
		Slug:           strings.ToLower(strings.TrimSpace(req.Slug)),
		StoreName:      req.StoreName,
		Description:    req.Description,
		OwnerID:        principal.UserID,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		LogoURL:        req.LogoURL,
		IsFoodService:  req.IsFoodService,
		IsActive:       true,
	}

	if err := h.db.Create(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create store"})
		return
	}

	h.publishStoreEvent(c.Request.Context(), EventStoreCreated, store)
	c.JSON(http.StatusCreated, gin.H{"success": true, "store": toStoreResponse(store)})
}

// ListStores is role-aware: admins see every active store, owners only
// their own. The role comes from the roles table, not from the JWT claim.
func (h *StoreHandler) ListStores(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	resolver := h.newResolver(principal.UserID)
	defer resolver.Close()
	if err := resolver.Resolve(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve stores"})
		return
	}

	visible := resolver.VisibleStores()
	out := make([]gin.H, 0, len(visible))
	for _, s := range visible {
		out = append(out, gin.H{
			"id":              s.ID,
			"slug":            s.Slug,
			"store_name":      s.Name,
			"logo_url":        s.LogoURL,
			"is_food_service": s.IsFoodService,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_admin": resolver.IsAdmin(), "stores": out})
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}
	storeID := c.Param("id")

	if err := h.policy.CanManageStore(c.Request.Context(), principal.UserID, storeID); err != nil {
		respondPolicyError(c, err)
		return
	}

	var store models.Store
	if err := h.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "store": toStoreResponse(store)})
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}
	storeID := c.Param("id")

	if err := h.policy.CanManageStore(c.Request.Context(), principal.UserID, storeID); err != nil {
		respondPolicyError(c, err)
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	for _, color := range []*string{req.PrimaryColor, req.SecondaryColor} {
		if color != nil && !validHexColor(*color) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Branding colors must be 6-digit hex strings"})
			return
		}
	}

	var store models.Store
	if err := h.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	if req.StoreName != nil {
		store.StoreName = *req.StoreName
	}
	if req.Description != nil {
		store.Description = req.Description
	}
	if req.PrimaryColor != nil {
		store.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		store.SecondaryColor = req.SecondaryColor
	}
	if req.LogoURL != nil {
		store.LogoURL = req.LogoURL
	}
	if req.IsFoodService != nil {
		store.IsFoodService = *req.IsFoodService
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	if err := h.db.Save(&store).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update store"})
		return
	}

	h.invalidateStoreCaches(c.Request.Context(), store.Slug)
	h.publishStoreEvent(c.Request.Context(), EventStoreUpdated, store)
	c.JSON(http.StatusOK, gin.H{"success": true, "store": toStoreResponse(store)})
}

func (h *StoreHandler) newResolver(userID int64) *storectx.Resolver {
	return storectx.NewResolver(userID, h.roles, h.stores, h.selections, storectx.NopThemeSink{})
}

// GetContext resolves the caller's active store: the persisted selection if
// it is still visible, otherwise the first visible store. The response
// carries the derived branding variables for the selected store.
func (h *StoreHandler) GetContext(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	resolver := h.newResolver(principal.UserID)
	defer resolver.Close()
	if err := resolver.Resolve(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve store context"})
		return
	}

	selected := resolver.Selected()
	if selected == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "is_admin": resolver.IsAdmin(), "selected": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"is_admin": resolver.IsAdmin(),
		"selected": gin.H{
			"id":              selected.ID,
			"slug":            selected.Slug,
			"store_name":      selected.Name,
			"logo_url":        selected.LogoURL,
			"is_food_service": selected.IsFoodService,
		},
		"theme": resolver.ThemeVariables(),
	})
}

// SetContext makes an explicit selection and persists it synchronously.
func (h *StoreHandler) SetContext(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var req SetContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "store_id required"})
		return
	}

	resolver := h.newResolver(principal.UserID)
	defer resolver.Close()
	if err := resolver.Resolve(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve store context"})
		return
	}

	if err := resolver.Select(c.Request.Context(), req.StoreID); err != nil {
		if errors.Is(err, storectx.ErrNotVisible) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Store is not visible to this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to persist selection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"selected": req.StoreID,
		"theme":    resolver.ThemeVariables(),
	})
}

type storefrontPayload struct {
	Store storeResponse     `json:"store"`
	Mode  string            `json:"mode"`
	Theme map[string]string `json:"theme"`
}

// Storefront is the public, unauthenticated view of one store: identity,
// menu-vs-catalog mode and the derived branding variables. Cached briefly
// per slug.
func (h *StoreHandler) Storefront(c *gin.Context) {
	slug := strings.ToLower(c.Param("slug"))
	ctx := c.Request.Context()
	cacheKey := STOREFRONT_CACHE_KEY + slug

	if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var payload storefrontPayload
		if json.Unmarshal([]byte(cached), &payload) == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "cached": true, "storefront": payload})
			return
		}
	}

	var store models.Store
	if err := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	mode := "catalog"
	if store.IsFoodService {
		mode = "menu"
	}

	payload := storefrontPayload{
		Store: toStoreResponse(store),
		Mode:  mode,
		Theme: storectx.ThemeVars(storectx.Store{
			ID:             store.ID,
			Slug:           store.Slug,
			Name:           store.StoreName,
			PrimaryColor:   store.PrimaryColor,
			SecondaryColor: store.SecondaryColor,
			LogoURL:        store.LogoURL,
			IsFoodService:  store.IsFoodService,
		}),
	}

	if raw, err := json.Marshal(payload); err == nil {
		_ = h.redis.Set(ctx, cacheKey, raw, CACHE_TTL_SHORT).Err()
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cached": false, "storefront": payload})
}

func respondPolicyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
	}
}
