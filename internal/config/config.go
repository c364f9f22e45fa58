package config

import (
	"errors"  // Validation errors
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting lists
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBType     string // mysql, postgres or sqlite
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name (file path for sqlite)
	DBMaxConns int    // Connection pool size
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address, empty disables caching
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
	LogLevel   string // logrus level name

	CORSOrigins []string // Allowed browser origins

	CountriesAPIURL string        // restcountries base URL
	SerpAPIURL      string        // SerpAPI search endpoint
	SerpAPIKey      string        // SerpAPI key
	WeatherAPIURL   string        // weatherapi.com base URL
	WeatherAPIKey   string        // weatherapi.com key
	CurrencyAPIURL  string        // currencyfreaks base URL
	CurrencyAPIKey  string        // currencyfreaks key
	ProxyCacheTTL   time.Duration // How long upstream responses stay in redis
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "8888"),
		DBType:     getEnv("DB_TYPE", "mysql"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    getEnvAsInt("REDIS_DB", 0),
		IsProd:     os.Getenv("IS_PROD") == "true",
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		CountriesAPIURL: getEnv("COUNTRIES_API_URL", "https://restcountries.com/v3.1"),
		SerpAPIURL:      getEnv("SERPAPI_URL", "https://serpapi.com/search.json"),
		SerpAPIKey:      os.Getenv("SERPAPI_KEY"),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
		WeatherAPIKey:   os.Getenv("WEATHER_API_KEY"),
		CurrencyAPIURL:  getEnv("CURRENCY_API_URL", "https://api.currencyfreaks.com/v2.0"),
		CurrencyAPIKey:  os.Getenv("CURRENCY_API_KEY"),
		ProxyCacheTTL:   getEnvAsDuration("PROXY_CACHE_TTL", 10*time.Minute),
	}
}

// Validate reports configuration that the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	switch c.DBType {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_TYPE %q", c.DBType))
	}
	return errors.Join(errs...)
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBType {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBName // File path
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true"
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
