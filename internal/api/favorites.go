package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Cache key building
	"strings"  // String manipulation
	"time"     // Time durations

	"wanderlist/internal/domain" // Required field errors
	"wanderlist/internal/store"  // Favorites store
	"wanderlist/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// listCacheTTL bounds how long a cached favorites list is served
const listCacheTTL = 60 * time.Second

// listCacheKey is the Redis key of one user's list for one collection
func listCacheKey(label string, userID uint) string {
	return "favorites:" + strings.ToLower(label) + ":user:" + strconv.FormatUint(uint64(userID), 10)
}

// invalidateList drops the cached list after a mutation
func invalidateList(ctx context.Context, cache *utils.Cache, label string, userID uint) {
	if err := cache.Delete(ctx, listCacheKey(label, userID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"kind":    label,       // Collection
			"error":   err.Error(), // Error message
		}).Warn("Failed to invalidate favorites cache")
	}
}

// AddFavoriteHandler saves a snapshot for the caller. The owner always comes
// from the token, never from the body.
func AddFavoriteHandler[T any, P store.Record[T]](s *store.FavoriteStore[T, P], cache *utils.Cache) gin.HandlerFunc {
	label, key := s.Label(), strings.ToLower(s.Label())
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		payload := P(new(T)) // Bind JSON request to the model
		if !bindRequired(c, payload, domain.RequiredFieldsError) {
			return
		}
		rec, err := s.Add(c.Request.Context(), userID, payload)
		if err != nil {
			respondError(c, err)
			return
		}
		// Log successful add
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,      // Owner
			"record_id": rec.GetID(), // New record
			"kind":      label,       // Collection
			"type":      "add",       // Mutation type
		}).Info("Favorite added")
		invalidateList(c.Request.Context(), cache, label, userID) // Invalidate list cache
		c.JSON(http.StatusCreated, gin.H{"message": label + " added to favourites", key: rec})
	}
}

// ListFavoritesHandler returns every record the caller owns
func ListFavoritesHandler[T any, P store.Record[T]](s *store.FavoriteStore[T, P], cache *utils.Cache) gin.HandlerFunc {
	label := s.Label()
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := listCacheKey(label, userID) // Cache key for the list
		var records []T
		found, err := cache.Get(ctx, cacheKey, &records) // Try to get from cache
		if err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, records) // Return cached list
			return
		}
		// If not in cache, fetch from DB
		records, err = s.ListByUser(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = cache.Set(ctx, cacheKey, records, listCacheTTL) // Cache the list
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, records)
	}
}

// UpdateFavoriteHandler edits the mutable fields of one of the caller's records
func UpdateFavoriteHandler[T any, P store.Record[T]](s *store.FavoriteStore[T, P], cache *utils.Cache) gin.HandlerFunc {
	label, key := s.Label(), strings.ToLower(s.Label())
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		recordID, ok := pathID(c)
		if !ok {
			return
		}
		edits := P(new(T)) // Partial body, blank fields are kept
		if !bindEdits(c, edits) {
			return
		}
		rec, err := s.Update(c.Request.Context(), userID, recordID, edits)
		if err != nil {
			logDenied(err, userID, recordID, label, "update")
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,   // Owner
			"record_id": recordID, // Updated record
			"kind":      label,    // Collection
			"type":      "update", // Mutation type
		}).Info("Favorite updated")
		invalidateList(c.Request.Context(), cache, label, userID)
		c.JSON(http.StatusOK, gin.H{"message": label + " updated successfully", key: rec})
	}
}

// DeleteFavoriteHandler removes one of the caller's records
func DeleteFavoriteHandler[T any, P store.Record[T]](s *store.FavoriteStore[T, P], cache *utils.Cache) gin.HandlerFunc {
	label := s.Label()
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		recordID, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.Remove(c.Request.Context(), userID, recordID); err != nil {
			logDenied(err, userID, recordID, label, "delete")
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,   // Owner
			"record_id": recordID, // Deleted record
			"kind":      label,    // Collection
			"type":      "delete", // Mutation type
		}).Info("Favorite deleted")
		invalidateList(c.Request.Context(), cache, label, userID)
		c.JSON(http.StatusOK, gin.H{"message": label + " deleted successfully"})
	}
}

// logDenied records ownership refusals
func logDenied(err error, userID, recordID uint, label, action string) {
	if statusFor(err) != http.StatusForbidden {
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,   // Caller
		"record_id": recordID, // Target record
		"kind":      label,    // Collection
		"action":    action,   // Attempted action
	}).Warn("Ownership check failed")
}
