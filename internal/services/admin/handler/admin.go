package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"plazoo-system/internal/auth"
	"plazoo-system/internal/database/models"
)

// AdminHandler is the user-management API. Every action re-checks the
// admin role against the roles table before touching anything; the role
// claim in the token is never trusted on its own.
type AdminHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	policy auth.Policy
}

func NewAdminHandler(db *gorm.DB, redisClient *redis.Client) *AdminHandler {
	return &AdminHandler{
		db:     db,
		redis:  redisClient,
		policy: auth.NewGormPolicy(db),
	}
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) requireAdmin(c *gin.Context) bool {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return false
	}
	if err := h.policy.RequireAdmin(c.Request.Context(), principal.UserID); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin role required"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
		}
		return false
	}
	return true
}

func (h *AdminHandler) targetUser(c *gin.Context) (*models.User, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return nil, false
	}
	var user models.User
	if err := h.db.Preload("Role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return nil, false
	}
	return &user, true
}

func userView(u models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"firstname":  u.Firstname,
		"lastname":   u.Lastname,
		"role":       u.Role.RoleName,
		"is_active":  u.IsActive,
		"is_banned":  u.IsBanned,
		"last_login": u.LastLogin,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if !h.requireAdmin(c) {
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
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	var users []models.User
	if err := h.db.Preload("Role").
		Order("id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out, "total": total, "page": page})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	var role models.Role
	if err := h.db.Where("role_name = ?", req.Role).First(&role).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown role: " + req.Role})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		RoleID:    role.ID,
		IsActive:  true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username or email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	user.Role = role
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": userView(user)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.targetUser(c)
	if !ok {
		return
	}

	if err := h.db.Delete(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

func (h *AdminHandler) ToggleBan(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.targetUser(c)
	if !ok {
		return
	}

	user.IsBanned = !user.IsBanned
	if err := h.db.Model(user).Update("is_banned", user.IsBanned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_banned": user.IsBanned})
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.targetUser(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "new_password required (min 6 characters)"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}
	if err := h.db.Model(user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset"})
}

func (h *AdminHandler) SetRole(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.targetUser(c)
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "role required"})
		return
	}

	var role models.Role
	if err := h.db.Where("role_name = ?", req.Role).First(&role).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown role: " + req.Role})
		return
	}

	if err := h.db.Model(user).Update("role_id", role.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to set role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": role.RoleName})
}
