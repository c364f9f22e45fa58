package db

import (
	"wanderlist/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table the application owns
func Models() []any {
	return []any{
		&domain.User{},
		&domain.FavoriteCountry{},
		&domain.FavoriteAttraction{},
		&domain.FavoriteWeather{},
	}
}

// Migrate creates tables, columns and the unique indexes on
// usernames, emails and each favorites (owner, natural key) pair
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
