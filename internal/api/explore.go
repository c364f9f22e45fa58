package api

import (
	"context"  // Upstream calls
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Query parsing
	"strings"  // String manipulation

	"wanderlist/internal/explore" // Upstream APIs
	"wanderlist/internal/store"   // Credential store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// defaultForecastDays is used when the days query is absent or invalid
const defaultForecastDays = 7

// Explorer is the third-party data the public pages and rates route need
type Explorer interface {
	CurrencyResolver
	Countries(ctx context.Context) ([]explore.CountrySummary, error)
	Country(ctx context.Context, name string) (*explore.CountryDetails, error)
	Attractions(ctx context.Context, country string) ([]explore.Sight, error)
	Forecast(ctx context.Context, country string, days int) ([]explore.ForecastDay, error)
	Rates(ctx context.Context, base string) (*explore.Rates, error)
}

// logUpstream records a degraded upstream call
func logUpstream(c *gin.Context, source string, err error) {
	logrus.WithFields(logrus.Fields{
		"source": source,      // Upstream name
		"path":   c.FullPath(), // Route
		"error":  err.Error(),  // Error message
	}).Warn("Upstream request failed")
}

// CountriesHandler lists countries. An upstream failure yields an empty list.
func CountriesHandler(ex Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := ex.Countries(c.Request.Context())
		if err != nil {
			logUpstream(c, "countries", err)
			countries = []explore.CountrySummary{}
		}
		c.JSON(http.StatusOK, countries)
	}
}

// CountryHandler returns the details of one country
func CountryHandler(ex Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param("name"))
		details, err := ex.Country(c.Request.Context(), name)
		if errors.Is(err, explore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}
		if err != nil {
			logUpstream(c, "countries", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Country service unavailable"})
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

// AttractionsHandler returns the top sights of a country. An upstream
// failure yields no sights rather than an error.
func AttractionsHandler(ex Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := strings.TrimSpace(c.Query("country"))
		if country == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "country is required"})
			return
		}
		sights, err := ex.Attractions(c.Request.Context(), country)
		if err != nil {
			logUpstream(c, "serpapi", err)
			sights = []explore.Sight{}
		}
		c.JSON(http.StatusOK, gin.H{"country": country, "sights": sights})
	}
}

// WeatherHandler returns a daily forecast. An upstream failure yields no days.
func WeatherHandler(ex Explorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := strings.TrimSpace(c.Query("country"))
		if country == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "country is required"})
			return
		}
		days := defaultForecastDays
		if d, err := strconv.Atoi(c.Query("days")); err == nil && d > 0 {
			days = d
		}
		forecast, err := ex.Forecast(c.Request.Context(), country, days)
		if err != nil {
			logUpstream(c, "weatherapi", err)
			forecast = []explore.ForecastDay{}
		}
		c.JSON(http.StatusOK, gin.H{"country": country, "forecast": forecast})
	}
}

// RatesHandler returns exchange rates based on the caller's stored currency
func RatesHandler(users *store.UserStore, ex Explorer) gin.HandlerFunc {
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
		if user.Currency == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No currency set for this user"})
			return
		}
		rates, err := ex.Rates(c.Request.Context(), user.Currency)
		if err != nil {
			logUpstream(c, "currencyfreaks", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Currency service unavailable"})
			return
		}
		c.JSON(http.StatusOK, rates)
	}
}
