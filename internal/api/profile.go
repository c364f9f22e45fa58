package api

import (
	"net/http" // HTTP status codes

	"wanderlist/internal/store" // Credential store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ProfileUpdateRequest holds the optional profile fields
type ProfileUpdateRequest struct {
	Country  *string `json:"country"`  // New home country
	Password *string `json:"password"` // New password, at least 8 characters
}

// GetProfileHandler returns the caller's user record without the password
func GetProfileHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := users.Profile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler changes the caller's country and/or password
func UpdateProfileHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.UpdateProfile(c.Request.Context(), userID, store.ProfileUpdate{
			Country:  req.Country,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Log the profile change, never the password itself
		logrus.WithFields(logrus.Fields{
			"user_id":          userID,                                     // User ID
			"country_changed":  req.Country != nil,                         // Country supplied
			"password_changed": req.Password != nil && *req.Password != "", // Password supplied
		}).Info("Profile updated")
		c.JSON(http.StatusOK, user)
	}
}
