package api

import (
	"encoding/json" // Edit payload decoding
	"errors"        // Error matching
	"net/http"      // HTTP status codes

	"wanderlist/internal/domain" // Error kinds

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Struct validation
)

func init() {
	// Gin binds with the same field names and tags the stores check
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := domain.RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

// bindRequired decodes the body and enforces its binding tags. A failed tag
// is answered with missing(err); a malformed body answers "Invalid request".
func bindRequired(c *gin.Context, dest any, missing func(error) error) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, missing(verrs))
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	return false
}

// bindEdits decodes a partial body without binding tags. Blank fields in an
// edit mean "keep the stored value", so required checks do not apply.
func bindEdits(c *gin.Context, dest any) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}
