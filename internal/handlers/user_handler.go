package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/middleware"
	"github.com/joshua-takyi/coachbook/internal/services"
)

type updateUserBody struct {
	Data        map[string]interface{} `json:"data"`
	Description string                 `json:"description"`
}

// UpdateUser handles PATCH /users/:id. Sessions are scoped to the same user
// id; everyone else gets 401.
func UpdateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.SessionClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		paramID := strings.TrimSpace(c.Param("id"))
		if paramID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user ID is required"})
			return
		}
		targetID, err := uuid.Parse(paramID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user ID format"})
			return
		}

		var body updateUserBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		user, err := u.UpdateProfile(c.Request.Context(), claims.UserID(), targetID, body.Data, body.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotAuthorized):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			default:
				_ = c.Error(err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User Updated", "data": user})
	}
}

// DeleteUser handles DELETE /users/:id.
func DeleteUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		paramID := strings.TrimSpace(c.Param("id"))
		targetID, err := uuid.Parse(paramID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		if err := u.DeleteUser(c.Request.Context(), targetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error while deleting a user. Maybe user with id " + paramID + " does not exist",
			})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
