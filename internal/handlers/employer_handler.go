package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joshua-takyi/coachbook/internal/services"
)

type createEmployerBody struct {
	Email        string `json:"email" binding:"required,email"`
	EmployerName string `json:"employerName" binding:"required"`
}

// CreateEmployer handles POST /employers: provisions a pre-verified account
// with a default event type and the partner's subscriber webhooks.
func CreateEmployer(e *services.EmployerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createEmployerBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		user, err := e.CreateEmployer(c.Request.Context(), services.CreateEmployerInput{
			Email:        body.Email,
			EmployerName: body.EmployerName,
		})
		if err != nil {
			if errors.Is(err, services.ErrDuplicateEmployer) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "employer_reg_duplicate"})
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"userId":   user.ID,
			"userName": user.Name,
		})
	}
}

// EmployerCredentials handles GET /employers/:id/credentials, the backend of
// the partner auto-login flow.
func EmployerCredentials(e *services.EmployerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		employerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Couldn't find an account for this email"})
			return
		}

		email, password, err := e.Credentials(c.Request.Context(), employerID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Couldn't find an account for this email"})
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"email": email, "password": password})
	}
}
