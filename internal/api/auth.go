package api

import (
	"context"  // Upstream calls
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"wanderlist/internal/domain"  // Identity and error kinds
	"wanderlist/internal/explore" // Upstream country data
	"wanderlist/internal/store"   // Credential store
	"wanderlist/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CurrencyResolver finds the currency code of a country
type CurrencyResolver interface {
	CurrencyCode(ctx context.Context, country string) (string, error)
}

// Request struct for registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`        // Unique username
	Email           string `json:"email" binding:"required"`           // Unique email
	Password        string `json:"password" binding:"required"`        // Plain password, hashed before storage
	ConfirmPassword string `json:"confirmPassword" binding:"required"` // Must equal Password
	Country         string `json:"country" binding:"required"`         // Home country name
	Currency        string `json:"currency,omitempty"`                 // Optional ISO 4217 code
}

// Request struct for login
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // Username or email
	Password   string `json:"password" binding:"required"`   // Plain password
}

// Response struct for authentication
type AuthResponse struct {
	Token string          `json:"token"` // JWT token
	User  domain.Identity `json:"user"`  // Authenticated identity
}

// Missing registration fields share one message
func allFieldsRequired(error) error {
	return domain.Validation("All fields are required")
}

// Missing login fields share one message
func credentialsRequired(error) error {
	return domain.Validation("Identifier and password are required")
}

// RegisterHandler creates a new account. When no currency is supplied it is
// resolved from the country, and a failed lookup creates no user. Local
// rules run first so a bad request never waits on the upstream.
func RegisterHandler(users *store.UserStore, currencies CurrencyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindRequired(c, &req, allFieldsRequired) {
			return
		}
		// Password confirmation must match
		if req.Password != req.ConfirmPassword {
			respondError(c, domain.Validation("Passwords do not match"))
			return
		}
		in := store.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Country:  req.Country,
			Currency: req.Currency,
		}
		// Blank fields, password bounds and duplicates
		if err := users.CheckRegistration(c.Request.Context(), in); err != nil {
			respondError(c, err)
			return
		}
		// Resolve the currency from the country when the client left it out
		if strings.TrimSpace(req.Currency) == "" && currencies != nil {
			code, err := currencies.CurrencyCode(c.Request.Context(), strings.TrimSpace(req.Country))
			if errors.Is(err, explore.ErrNotFound) {
				respondError(c, domain.Validation("Unknown country"))
				return
			}
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"country": req.Country, // Country looked up
					"error":   err.Error(), // Error message
				}).Error("Currency lookup failed")
				respondError(c, domain.Upstream("Could not resolve currency for country"))
				return
			}
			in.Currency = code
		}
		// Create the user
		if err := users.Register(c.Request.Context(), in); err != nil {
			respondError(c, err)
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"username": req.Username, // Username
			"country":  req.Country,  // Home country
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindRequired(c, &req, credentialsRequired) {
			return
		}
		// Look the user up by username or email and check the password
		identity, err := users.Authenticate(c.Request.Context(), req.Identifier, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(identity, jwtSecret)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: identity})
	}
}
