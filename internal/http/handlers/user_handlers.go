package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
)

// UserHandlers handles administrative user management requests
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// StatusRequest carries the activation flag. A pointer distinguishes a
// missing field from an explicit false.
type StatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// List handles paged listing of users
func (h *UserHandlers) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	users, total, err := h.userSvc.List(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	publicUsers := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		publicUsers = append(publicUsers, u.Public())
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"users":    publicUsers,
			"total":    total,
			"page":     page,
			"per_page": perPage,
		},
	})
}

// Get handles fetching a single user by id
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.Public()})
}

// SetStatus handles activating or deactivating a user. Deactivation takes
// effect on the user's next request since the auth middleware checks the
// live flag.
func (h *UserHandlers) SetStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userSvc.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}

	message := "User activated"
	if !user.IsActive {
		message = "User deactivated"
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": message,
			"user":    user.Public(),
		},
	})
}

// Delete handles removing a user
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandlers) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}
