// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pr-tracker-api-server/internal/auth"
	"pr-tracker-api-server/internal/database"
	"pr-tracker-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// UserLookup finds a user by email.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type UserHandler struct {
	Users  UserLookup
	Issuer *auth.Issuer
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user", "details": err.Error()})
		return
	}
	if user.Status != "active" || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.Issuer.GenerateJWT(user.UserID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
