package api

import (
	"wanderlist/internal/domain"     // Favorites models
	"wanderlist/internal/middleware" // Custom package for middleware
	"wanderlist/internal/store"      // Stores
	"wanderlist/internal/utils"      // Redis cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Deps holds everything the router wires into handlers
type Deps struct {
	DB          *gorm.DB                  // Database handle
	Cache       *utils.Cache              // Redis cache, may be nil
	Explorer    Explorer                  // Third-party data proxy
	JWTSecret   string                    // Token signing key
	CORSOrigins []string                  // Allowed browser origins
	AuthLimiter *middleware.IPRateLimiter // Limits /register and /login, may be nil
}

// NewRouter builds the Gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New() // Gin router instance
	r.Use(middleware.RequestLogger(), middleware.RecoveryMiddleware(), middleware.CORS(d.CORSOrigins))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Warnf("failed to set trusted proxies: %v", err)
	}

	users := store.NewUserStore(d.DB)
	countries := store.NewFavoriteStore[domain.FavoriteCountry](d.DB)
	attractions := store.NewFavoriteStore[domain.FavoriteAttraction](d.DB)
	weather := store.NewFavoriteStore[domain.FavoriteWeather](d.DB)

	r.GET("/health", HealthHandler(d.DB)) // Liveness and DB check

	// Auth routes
	auth := r.Group("")
	if d.AuthLimiter != nil {
		auth.Use(middleware.RateLimit(d.AuthLimiter))
	}
	var currencies CurrencyResolver
	if d.Explorer != nil {
		currencies = d.Explorer
	}
	auth.POST("/register", RegisterHandler(users, currencies)) // Registration endpoint
	auth.POST("/login", LoginHandler(users, d.JWTSecret))      // Login endpoint

	// Public explore routes
	if d.Explorer != nil {
		r.GET("/countries", CountriesHandler(d.Explorer))     // Country list
		r.GET("/countries/:name", CountryHandler(d.Explorer)) // Country details
		r.GET("/attractions", AttractionsHandler(d.Explorer)) // Top sights
		r.GET("/weather", WeatherHandler(d.Explorer))         // Forecast
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	protected.GET("/profile", GetProfileHandler(users))    // Get profile
	protected.PUT("/profile", UpdateProfileHandler(users)) // Update profile
	if d.Explorer != nil {
		protected.GET("/rates", RatesHandler(users, d.Explorer)) // Exchange rates for the user's currency
	}

	registerFavorites(protected, "/favoriteCountry", countries, d.Cache)
	registerFavorites(protected, "/favoriteAttraction", attractions, d.Cache)
	registerFavorites(protected, "/favoriteWeather", weather, d.Cache)

	return r
}

// registerFavorites mounts the four routes of one favorites collection
func registerFavorites[T any, P store.Record[T]](g *gin.RouterGroup, path string, s *store.FavoriteStore[T, P], cache *utils.Cache) {
	g.POST(path, AddFavoriteHandler(s, cache))             // Add
	g.GET(path, ListFavoritesHandler(s, cache))            // List the caller's records
	g.PUT(path+"/:id", UpdateFavoriteHandler(s, cache))    // Update editable fields
	g.DELETE(path+"/:id", DeleteFavoriteHandler(s, cache)) // Delete
}
