package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"plazoo-system/internal/auth"
	"plazoo-system/internal/database/models"
	"plazoo-system/internal/pricing"
	"plazoo-system/internal/variant"
)

const (
	CATALOG_CACHE_PREFIX = "catalog:"
	CACHE_TTL_SHORT      = 5 * time.Minute
)

type CatalogHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	policy auth.Policy
}

func NewCatalogHandler(db *gorm.DB, redisClient *redis.Client) *CatalogHandler {
	return &CatalogHandler{
		db:     db,
		redis:  redisClient,
		policy: auth.NewGormPolicy(db),
	}
}

type CreateProductRequest struct {
	ProductCode string  `json:"product_code" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	BasePrice   string  `json:"base_price" binding:"required"`
	CostPrice   *string `json:"cost_price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type UpdateProductRequest struct {
	ProductName *string `json:"product_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	BasePrice   *string `json:"base_price,omitempty"`
	CostPrice   *string `json:"cost_price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type AxisInput struct {
	Name   string   `json:"name" binding:"required"`
	Values []string `json:"values"`
}

type ReplaceAxesRequest struct {
	Axes []AxisInput `json:"axes"`
}

type UpdateCombinationRequest struct {
	SKU           *string `json:"sku,omitempty"`
	StockQuantity *int32  `json:"stock_quantity,omitempty"`
	SafetyStock   *int32  `json:"safety_stock,omitempty"`
	SalePrice     *string `json:"sale_price,omitempty"`
	CostPrice     *string `json:"cost_price,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
}

type SizeInput struct {
	SizeName        string `json:"size_name" binding:"required"`
	PriceAdjustment string `json:"price_adjustment"`
}

type AddOnInput struct {
	AddOnName string `json:"add_on_name" binding:"required"`
	Price     string `json:"price" binding:"required"`
}

func (h *CatalogHandler) invalidateCatalogCaches(ctx context.Context, storeID string) {
	_ = h.redis.Del(ctx, CATALOG_CACHE_PREFIX+storeID)
}

func parseMoney(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func (h *CatalogHandler) requireManage(c *gin.Context) (auth.Principal, string, bool) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return auth.Principal{}, "", false
	}
	storeID := c.Param("id")
	if err := h.policy.CanManageStore(c.Request.Context(), principal.UserID, storeID); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed"})
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
		}
		return auth.Principal{}, "", false
	}
	return principal, storeID, true
}

func (h *CatalogHandler) loadStoreProduct(c *gin.Context, storeID string) (*models.Product, bool) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return nil, false
	}
	var product models.Product
	if err := h.db.Where("id = ? AND store_id = ?", productID, storeID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return nil, false
	}
	return &product, true
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	basePrice, valid := parseMoney(req.BasePrice)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "base_price must be a non-negative amount"})
		return
	}
	costPrice := decimal.Zero
	if req.CostPrice != nil {
		if costPrice, valid = parseMoney(*req.CostPrice); !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cost_price must be a non-negative amount"})
			return
		}
	}

	product := models.Product{
		StoreID:     storeID,
		ProductCode: req.ProductCode,
		ProductName: req.ProductName,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   pricing.Format(basePrice),
		CostPrice:   pricing.Format(costPrice),
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := h.db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product code already used in this store"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}

	var products []models.Product
	if err := h.db.Where("store_id = ?", storeID).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("AddOns").
		Preload("Axes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Axes.Values", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Combinations").
		Order("product_name ASC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.BasePrice != nil {
		price, valid := parseMoney(*req.BasePrice)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "base_price must be a non-negative amount"})
			return
		}
		product.BasePrice = pricing.Format(price)
	}
	if req.CostPrice != nil {
		price, valid := parseMoney(*req.CostPrice)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cost_price must be a non-negative amount"})
			return
		}
		product.CostPrice = pricing.Format(price)
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	// soft delete: the product disappears from the storefront but order
	// history keeps referencing it
	product.IsActive = false
	if err := h.db.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deactivated"})
}

// ReplaceAxes swaps the product's variant axes for the given set and
// regenerates the combination matrix. Combinations whose key survives the
// regeneration keep their SKU/stock/price state; new keys start empty and
// vanished keys are removed.
func (h *CatalogHandler) ReplaceAxes(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	var req ReplaceAxesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	seen := make(map[string]bool, len(req.Axes))
	axes := make([]variant.Axis, 0, len(req.Axes))
	for _, a := range req.Axes {
		if seen[a.Name] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Duplicate axis name: " + a.Name})
			return
		}
		seen[a.Name] = true
		axes = append(axes, variant.Axis{Name: a.Name, Values: a.Values})
	}

	combos := variant.Generate(axes)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var oldAxes []models.VariantAxis
		if err := tx.Where("product_id = ?", product.ID).Find(&oldAxes).Error; err != nil {
			return err
		}
		for _, oa := range oldAxes {
			if err := tx.Where("axis_id = ?", oa.ID).Delete(&models.VariantAxisValue{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.VariantAxis{}).Error; err != nil {
			return err
		}

		for i, a := range req.Axes {
			axis := models.VariantAxis{ProductID: product.ID, AxisName: a.Name, Position: int32(i)}
			if err := tx.Create(&axis).Error; err != nil {
				return err
			}
			for j, v := range a.Values {
				value := models.VariantAxisValue{AxisID: axis.ID, Value: v, Position: int32(j)}
				if err := tx.Create(&value).Error; err != nil {
					return err
				}
			}
		}

		var existing []models.VariantCombination
		if err := tx.Where("product_id = ?", product.ID).Find(&existing).Error; err != nil {
			return err
		}
		existingByKey := make(map[string]models.VariantCombination, len(existing))
		for _, e := range existing {
			existingByKey[e.CombinationKey] = e
		}

		wanted := make(map[string]bool, len(combos))
		for _, combo := range combos {
			wanted[combo.Key] = true
			selections, err := json.Marshal(combo.Selections)
			if err != nil {
				return err
			}
			if prev, found := existingByKey[combo.Key]; found {
				prev.SelectionsJSON = string(selections)
				if err := tx.Save(&prev).Error; err != nil {
					return err
				}
				continue
			}
			fresh := models.VariantCombination{
				ProductID:      product.ID,
				CombinationKey: combo.Key,
				SelectionsJSON: string(selections),
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		}

		for key, e := range existingByKey {
			if !wanted[key] {
				if err := tx.Delete(&models.VariantCombination{}, e.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to replace axes"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusOK, gin.H{"success": true, "combinations": len(combos)})
}

func (h *CatalogHandler) UpdateCombination(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	// keys contain the " / " separator, so they travel as a query param
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "key query parameter required"})
		return
	}
	var combo models.VariantCombination
	if err := h.db.Where("product_id = ? AND combination_key = ?", product.ID, key).First(&combo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Combination not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	var req UpdateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	if req.SKU != nil {
		combo.SKU = req.SKU
	}
	if req.StockQuantity != nil {
		combo.StockQuantity = *req.StockQuantity
	}
	if req.SafetyStock != nil {
		combo.SafetyStock = *req.SafetyStock
	}
	if req.SalePrice != nil {
		price, valid := parseMoney(*req.SalePrice)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "sale_price must be a non-negative amount"})
			return
		}
		formatted := pricing.Format(price)
		combo.SalePrice = &formatted
	}
	if req.CostPrice != nil {
		price, valid := parseMoney(*req.CostPrice)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cost_price must be a non-negative amount"})
			return
		}
		formatted := pricing.Format(price)
		combo.CostPrice = &formatted
	}
	if req.ImageURL != nil {
		combo.ImageURL = req.ImageURL
	}

	if err := h.db.Save(&combo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update combination"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusOK, gin.H{"success": true, "combination": combo})
}

func (h *CatalogHandler) AddSize(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	var req SizeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	adjustment := decimal.Zero
	if req.PriceAdjustment != "" {
		d, err := decimal.NewFromString(req.PriceAdjustment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price_adjustment must be an amount"})
			return
		}
		adjustment = d
	}

	var count int64
	h.db.Model(&models.ProductSize{}).Where("product_id = ?", product.ID).Count(&count)

	size := models.ProductSize{
		ProductID:       product.ID,
		SizeName:        req.SizeName,
		PriceAdjustment: pricing.Format(adjustment),
		Position:        int32(count),
	}
	if err := h.db.Create(&size).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add size"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "size": size})
}

func (h *CatalogHandler) AddAddOn(c *gin.Context) {
	_, storeID, ok := h.requireManage(c)
	if !ok {
		return
	}
	product, ok := h.loadStoreProduct(c, storeID)
	if !ok {
		return
	}

	var req AddOnInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	price, valid := parseMoney(req.Price)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must be a non-negative amount"})
		return
	}

	addOn := models.ProductAddOn{
		ProductID: product.ID,
		AddOnName: req.AddOnName,
		Price:     pricing.Format(price),
		IsActive:  true,
	}
	if err := h.db.Create(&addOn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add add-on"})
		return
	}

	h.invalidateCatalogCaches(c.Request.Context(), storeID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "add_on": addOn})
}

// StorefrontProducts is the public listing for one store's catalog or menu:
// active products with sizes, add-ons and variant combinations. Cached per
// store.
func (h *CatalogHandler) StorefrontProducts(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var store models.Store
	if err := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	cacheKey := CATALOG_CACHE_PREFIX + store.ID
	if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var products []models.Product
		if json.Unmarshal([]byte(cached), &products) == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "cached": true, "products": products})
			return
		}
	}

	var products []models.Product
	if err := h.db.Where("store_id = ? AND is_active = ?", store.ID, true).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("AddOns", "is_active = ?", true).
		Preload("Combinations").
		Order("category ASC, product_name ASC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	if raw, err := json.Marshal(products); err == nil {
		_ = h.redis.Set(ctx, cacheKey, raw, CACHE_TTL_SHORT).Err()
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cached": false, "products": products})
}
