package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"plazoo-system/internal/auth"
	"plazoo-system/internal/database/models"
	"plazoo-system/internal/pricing"
)

const (
	EventOrderCreated = "order.created"
	EventCartUpdated  = "cart.updated"
)

type CheckoutHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	policy auth.Policy
}

func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client) *CheckoutHandler {
	return &CheckoutHandler{
		db:     db,
		redis:  redisClient,
		policy: auth.NewGormPolicy(db),
	}
}

type CreateCartRequest struct {
	StoreID string `json:"store_id" binding:"required"`
}

type AddItemRequest struct {
	ProductID      int64            `json:"product_id" binding:"required"`
	Quantity       int32            `json:"quantity" binding:"required,min=1"`
	SizeID         *int64           `json:"size_id,omitempty"`
	CombinationKey *string          `json:"combination_key,omitempty"`
	AddOns         []ItemAddOnInput `json:"add_ons,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

type ItemAddOnInput struct {
	AddOnID  int64 `json:"add_on_id" binding:"required"`
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}

type DiscountRequest struct {
	DiscountType  string `json:"discount_type" binding:"required"`
	DiscountValue string `json:"discount_value" binding:"required"`
}

type CheckoutRequest struct {
	CartID         int64   `json:"cart_id" binding:"required"`
	IdempotencyKey string  `json:"idempotency_key" binding:"required"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
	Channel        *string `json:"channel,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func parseDiscountType(s string) (int32, bool) {
	switch s {
	case "percent":
		return models.DiscountTypePercent, true
	case "fixed":
		return models.DiscountTypeFixed, true
	case "none":
		return models.DiscountTypeNone, true
	default:
		return 0, false
	}
}

func pricingType(t int32) pricing.DiscountType {
	switch t {
	case models.DiscountTypePercent:
		return pricing.DiscountPercent
	case models.DiscountTypeFixed:
		return pricing.DiscountFixed
	default:
		return pricing.DiscountNone
	}
}

func (h *CheckoutHandler) publishOrderEvent(ctx context.Context, doc models.OrderDocument) {
	payload, err := json.Marshal(gin.H{
		"event_type":      EventOrderCreated,
		"order_id":        doc.ID,
		"document_number": doc.DocumentNumber,
		"store_id":        doc.StoreID,
		"total_amount":    doc.TotalAmount,
		"timestamp":       time.Now(),
	})
	if err != nil {
		return
	}
	_ = h.redis.Publish(ctx, fmt.Sprintf("plazoo:events:%s", EventOrderCreated), payload).Err()
	_ = h.redis.Publish(ctx, "plazoo:events:all", payload).Err()
}

func (h *CheckoutHandler) CreateCart(c *gin.Context) {
	var req CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "store_id required"})
		return
	}

	var store models.Store
	if err := h.db.Where("id = ? AND is_active = ?", req.StoreID, true).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	cart := models.Cart{StoreID: store.ID, Status: models.CartStatusOpen}
	if principal, ok := auth.PrincipalFrom(c); ok {
		cart.ShopperID = &principal.UserID
	}
	if err := h.db.Create(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create cart"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "cart": cart})
}

func (h *CheckoutHandler) loadOpenCart(c *gin.Context) (*models.Cart, bool) {
	cartID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart id"})
		return nil, false
	}
	var cart models.Cart
	if err := h.db.Where("id = ? AND status = ?", cartID, models.CartStatusOpen).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart not found or no longer open"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return nil, false
	}
	return &cart, true
}

// unitPriceFor picks the unit price for a line: the combination's sale price
// when one is chosen and filled in, the product base price otherwise.
func unitPriceFor(product models.Product, combo *models.VariantCombination) decimal.Decimal {
	if combo != nil && combo.SalePrice != nil && *combo.SalePrice != "" {
		return pricing.Parse(*combo.SalePrice)
	}
	return pricing.Parse(product.BasePrice)
}

func (h *CheckoutHandler) AddItem(c *gin.Context) {
	cart, ok := h.loadOpenCart(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	var product models.Product
	if err := h.db.Where("id = ? AND store_id = ? AND is_active = ?", req.ProductID, cart.StoreID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found in this store"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	var combo *models.VariantCombination
	if req.CombinationKey != nil {
		var found models.VariantCombination
		if err := h.db.Where("product_id = ? AND combination_key = ?", product.ID, *req.CombinationKey).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Variant combination not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}
		if found.StockQuantity < req.Quantity {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Insufficient stock for this combination"})
			return
		}
		combo = &found
	}

	if req.SizeID != nil {
		var size models.ProductSize
		if err := h.db.Where("id = ? AND product_id = ?", *req.SizeID, product.ID).First(&size).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Size does not belong to this product"})
			return
		}
	}

	unitPrice := unitPriceFor(product, combo)
	item := models.CartItem{
		CartID:         cart.ID,
		ProductID:      product.ID,
		SizeID:         req.SizeID,
		CombinationKey: req.CombinationKey,
		Quantity:       req.Quantity,
		UnitPrice:      pricing.Format(unitPrice),
		LineTotal:      "0.00",
		Notes:          req.Notes,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		for _, a := range req.AddOns {
			var addOn models.ProductAddOn
			if err := tx.Where("id = ? AND product_id = ? AND is_active = ?", a.AddOnID, product.ID, true).First(&addOn).Error; err != nil {
				return fmt.Errorf("add-on %d not available: %w", a.AddOnID, err)
			}
			itemAddOn := models.CartItemAddOn{
				CartItemID: item.ID,
				AddOnID:    addOn.ID,
				Quantity:   a.Quantity,
				UnitPrice:  addOn.Price,
			}
			if err := tx.Create(&itemAddOn).Error; err != nil {
				return err
			}
		}
		return h.recalculateCartTotals(tx, cart.ID)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to add item: " + err.Error()})
		return
	}

	h.respondWithCart(c, cart.ID, "Item added to cart")
}

func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	cart, ok := h.loadOpenCart(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item id"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("cart_item_id = ?", itemID).Delete(&models.CartItemAddOn{}).Error; err != nil {
			return err
		}
		return h.recalculateCartTotals(tx, cart.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove item"})
		return
	}

	h.respondWithCart(c, cart.ID, "Item removed from cart")
}

// ApplyLineDiscount discounts the unit price of one line, before the
// quantity multiplication.
func (h *CheckoutHandler) ApplyLineDiscount(c *gin.Context) {
	cart, ok := h.loadOpenCart(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item id"})
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "discount_type and discount_value required"})
		return
	}
	typ, valid := parseDiscountType(req.DiscountType)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "discount_type must be percent, fixed or none"})
		return
	}
	value := pricing.ClampValue(pricing.Parse(req.DiscountValue))
	if typ == models.DiscountTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "percent discount cannot exceed 100"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			return err
		}
		item.DiscountType = typ
		item.DiscountValue = pricing.Format(value)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return h.recalculateCartTotals(tx, cart.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to apply discount"})
		return
	}

	h.respondWithCart(c, cart.ID, "Line discount applied")
}

// ApplyOrderDiscount discounts the summed subtotal of already-discounted
// lines.
func (h *CheckoutHandler) ApplyOrderDiscount(c *gin.Context) {
	cart, ok := h.loadOpenCart(c)
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "discount_type and discount_value required"})
		return
	}
	typ, valid := parseDiscountType(req.DiscountType)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "discount_type must be percent, fixed or none"})
		return
	}
	value := pricing.ClampValue(pricing.Parse(req.DiscountValue))
	if typ == models.DiscountTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "percent discount cannot exceed 100"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		cart.DiscountType = typ
		cart.DiscountValue = pricing.Format(value)
		if err := tx.Save(cart).Error; err != nil {
			return err
		}
		return h.recalculateCartTotals(tx, cart.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to apply discount"})
		return
	}

	h.respondWithCart(c, cart.ID, "Order discount applied")
}

func (h *CheckoutHandler) GetCart(c *gin.Context) {
	cartID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart id"})
		return
	}
	h.respondWithCart(c, cartID, "")
}

func (h *CheckoutHandler) respondWithCart(c *gin.Context, cartID int64, message string) {
	var cart models.Cart
	if err := h.db.Where("id = ?", cartID).
		Preload("CartItems.Product").
		Preload("CartItems.Size").
		Preload("CartItems.AddOns.AddOn").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reload cart"})
		return
	}
	resp := gin.H{"success": true, "cart": cart}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}

// recalculateCartTotals recomputes every line total and the cart totals
// from the stored unit prices, size adjustments, add-ons and discounts.
func (h *CheckoutHandler) recalculateCartTotals(tx *gorm.DB, cartID int64) error {
	var cart models.Cart
	if err := tx.Where("id = ?", cartID).
		Preload("CartItems.Size").
		Preload("CartItems.AddOns").
		First(&cart).Error; err != nil {
		return err
	}

	lines := make([]pricing.Line, 0, len(cart.CartItems))
	for i := range cart.CartItems {
		item := &cart.CartItems[i]

		sizeAdj := decimal.Zero
		if item.Size != nil {
			sizeAdj = pricing.Parse(item.Size.PriceAdjustment)
		}
		addOns := make([]pricing.AddOn, 0, len(item.AddOns))
		for _, a := range item.AddOns {
			addOns = append(addOns, pricing.AddOn{Price: pricing.Parse(a.UnitPrice), Quantity: a.Quantity})
		}

		line := pricing.Line{
			BasePrice:      pricing.Parse(item.UnitPrice),
			SizeAdjustment: sizeAdj,
			AddOns:         addOns,
			Quantity:       item.Quantity,
			DiscountType:   pricingType(item.DiscountType),
			DiscountValue:  pricing.Parse(item.DiscountValue),
		}
		lines = append(lines, line)

		item.LineTotal = pricing.Format(line.Total())
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
			Update("line_total", item.LineTotal).Error; err != nil {
			return err
		}
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	total := pricing.OrderTotal(lines, pricing.Parse(cart.DiscountValue), pricingType(cart.DiscountType))

	return tx.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"subtotal":        pricing.Format(subtotal),
		"discount_amount": pricing.Format(subtotal.Sub(total)),
		"total_amount":    pricing.Format(total),
	}).Error
}

// Checkout turns an open cart into an order. The order header, items and
// item add-ons are written in one transaction, and the caller-supplied
// idempotency key makes a retried checkout return the already-created order
// instead of duplicating the header.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cart_id and idempotency_key required"})
		return
	}

	// replayed attempt: hand back whatever the first attempt created
	var existing models.OrderDocument
	err := h.db.Where("idempotency_key = ?", req.IdempotencyKey).
		Preload("OrderItems.AddOns").
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "replayed": true, "order": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	var cart models.Cart
	if err := h.db.Where("id = ? AND status = ?", req.CartID, models.CartStatusOpen).
		Preload("CartItems.Size").
		Preload("CartItems.AddOns.AddOn").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart not found or already checked out"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	if len(cart.CartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	channel := models.ChannelOnline
	if req.Channel != nil && *req.Channel == "in_person" {
		channel = models.ChannelInPerson
	}

	now := time.Now()
	doc := models.OrderDocument{
		DocumentNumber: fmt.Sprintf("PLZ-%s-%s", now.Format("20060102"), uuid.NewString()[:8]),
		IdempotencyKey: req.IdempotencyKey,
		StoreID:        cart.StoreID,
		ShopperID:      cart.ShopperID,
		Channel:        channel,
		OrderDate:      &now,
		Subtotal:       cart.Subtotal,
		DiscountAmount: cart.DiscountAmount,
		TotalAmount:    cart.TotalAmount,
		PaidStatus:     models.PaidStatusUnpaid,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		for _, item := range cart.CartItems {
			sizeAdj := decimal.Zero
			if item.Size != nil {
				sizeAdj = pricing.Parse(item.Size.PriceAdjustment)
			}
			addOns := make([]pricing.AddOn, 0, len(item.AddOns))
			for _, a := range item.AddOns {
				addOns = append(addOns, pricing.AddOn{Price: pricing.Parse(a.UnitPrice), Quantity: a.Quantity})
			}
			before := pricing.LineTotal(pricing.Parse(item.UnitPrice), sizeAdj, addOns, item.Quantity)
			net := pricing.Parse(item.LineTotal)

			orderItem := models.OrderItem{
				DocumentID:          doc.ID,
				ProductID:           item.ProductID,
				SizeID:              item.SizeID,
				CombinationKey:      item.CombinationKey,
				Quantity:            item.Quantity,
				UnitPrice:           item.UnitPrice,
				PriceBeforeDiscount: pricing.Format(before),
				DiscountAmount:      pricing.Format(before.Sub(net)),
				LineTotal:           item.LineTotal,
				Notes:               item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			for _, a := range item.AddOns {
				name := ""
				if a.AddOn != nil {
					name = a.AddOn.AddOnName
				}
				itemAddOn := models.OrderItemAddOn{
					OrderItemID: orderItem.ID,
					AddOnID:     a.AddOnID,
					AddOnName:   name,
					Quantity:    a.Quantity,
					UnitPrice:   a.UnitPrice,
				}
				if err := tx.Create(&itemAddOn).Error; err != nil {
					return err
				}
			}

			if item.CombinationKey != nil {
				result := tx.Model(&models.VariantCombination{}).
					Where("product_id = ? AND combination_key = ? AND stock_quantity >= ?",
						item.ProductID, *item.CombinationKey, item.Quantity).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("insufficient stock for combination %s", *item.CombinationKey)
				}
			}
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("status", models.CartStatusCheckedOut).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent retry won the race; return its order
			if lookupErr := h.db.Where("idempotency_key = ?", req.IdempotencyKey).
				Preload("OrderItems.AddOns").
				First(&existing).Error; lookupErr == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "replayed": true, "order": existing})
				return
			}
		}
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Checkout failed: " + err.Error()})
		return
	}

	if err := h.db.Where("id = ?", doc.ID).
		Preload("OrderItems.AddOns").
		First(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reload order"})
		return
	}

	h.publishOrderEvent(c.Request.Context(), doc)
	c.JSON(http.StatusCreated, gin.H{"success": true, "replayed": false, "order": doc})
}

func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var doc models.OrderDocument
	if err := h.db.Where("id = ?", orderID).
		Preload("OrderItems.Product").
		Preload("OrderItems.AddOns").
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	if err := h.policy.CanManageStore(c.Request.Context(), principal.UserID, doc.StoreID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": doc})
}

func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}
	storeID := c.Param("id")
	if err := h.policy.CanManageStore(c.Request.Context(), principal.UserID, storeID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed"})
		return
	}

	pageSize := 20
	if s := c.Query("page_size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}
	page := 1
	if s := c.Query("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page = n
		}
	}

	var total int64
	query := h.db.Model(&models.OrderDocument{}).Where("store_id = ?", storeID)
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	var docs []models.OrderDocument
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Preload("OrderItems").
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": docs, "total": total, "page": page})
}
