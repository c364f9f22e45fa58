package domain

import "strings" // Blank edit detection

// Favorite is the capability shared by every saved-snapshot collection.
// Each collection is owned per record and unique per (owner, natural key).
type Favorite interface {
	GetID() uint                // Storage-assigned record ID
	OwnerID() uint              // Owning user ID
	PrepareInsert(userID uint)  // Stamp the owner and drop any client-supplied ID
	NaturalKey() map[string]any // Column -> value, unique per owner
	Label() string              // Human name used in messages ("Country")
}

// FavoriteCountry Model
type FavoriteCountry struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	UserID              uint   `gorm:"not null;uniqueIndex:idx_fav_country_owner_key,priority:1" json:"userID"`
	CountryName         string `gorm:"size:128;not null;uniqueIndex:idx_fav_country_owner_key,priority:2" json:"countryName" binding:"required,notblank"`
	CountryFlag         string `gorm:"size:512;not null" json:"countryFlag" binding:"required,notblank"`
	CountryRegion       string `gorm:"size:128;not null" json:"countryRegion" binding:"required,notblank"`
	CountryCapital      string `gorm:"size:128;not null" json:"countryCapital" binding:"required,notblank"`
	CountryLanguage     string `gorm:"size:255;not null" json:"countryLanguage" binding:"required,notblank"`
	CountryTranslations string `gorm:"type:text;not null" json:"countryTranslations" binding:"required,notblank"`
	CountryCurrency     string `gorm:"size:128;not null" json:"countryCurrency" binding:"required,notblank"`
}

func (f *FavoriteCountry) GetID() uint               { return f.ID }
func (f *FavoriteCountry) OwnerID() uint             { return f.UserID }
func (f *FavoriteCountry) PrepareInsert(userID uint) { f.ID, f.UserID = 0, userID }
func (f *FavoriteCountry) Label() string             { return "Country" }

func (f *FavoriteCountry) NaturalKey() map[string]any {
	return map[string]any{"country_name": f.CountryName}
}

// ApplyEdits copies the editable fields from src. Name and flag are fixed.
func (f *FavoriteCountry) ApplyEdits(src *FavoriteCountry) {
	set(&f.CountryRegion, src.CountryRegion)
	set(&f.CountryCapital, src.CountryCapital)
	set(&f.CountryLanguage, src.CountryLanguage)
	set(&f.CountryTranslations, src.CountryTranslations)
	set(&f.CountryCurrency, src.CountryCurrency)
}

// FavoriteAttraction Model
type FavoriteAttraction struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	UserID                uint   `gorm:"not null;uniqueIndex:idx_fav_attraction_owner_key,priority:1" json:"userID"`
	CountryName           string `gorm:"size:128;not null;uniqueIndex:idx_fav_attraction_owner_key,priority:2" json:"countryName" binding:"required,notblank"`
	CountryFlag           string `gorm:"size:512;not null" json:"countryFlag" binding:"required,notblank"`
	AttractionTitle       string `gorm:"size:255;not null;uniqueIndex:idx_fav_attraction_owner_key,priority:3" json:"attractionTitle" binding:"required,notblank"`
	AttractionDescription string `gorm:"type:text;not null" json:"attractionDescription" binding:"required,notblank"`
	AttractionRating      string `gorm:"size:32;not null" json:"attractionRating" binding:"required,notblank"`
	AttractionReview      string `gorm:"size:64;not null" json:"attractionReview" binding:"required,notblank"`
	AttractionPrice       string `gorm:"size:64;not null" json:"attractionPrice" binding:"required,notblank"`
	AttractionThumbnail   string `gorm:"size:1024;not null" json:"attractionThumbnail" binding:"required,notblank"`
}

func (f *FavoriteAttraction) GetID() uint               { return f.ID }
func (f *FavoriteAttraction) OwnerID() uint             { return f.UserID }
func (f *FavoriteAttraction) PrepareInsert(userID uint) { f.ID, f.UserID = 0, userID }
func (f *FavoriteAttraction) Label() string             { return "Attraction" }

func (f *FavoriteAttraction) NaturalKey() map[string]any {
	return map[string]any{"country_name": f.CountryName, "attraction_title": f.AttractionTitle}
}

// ApplyEdits copies the editable fields from src. Country, title and thumbnail are fixed.
func (f *FavoriteAttraction) ApplyEdits(src *FavoriteAttraction) {
	set(&f.AttractionDescription, src.AttractionDescription)
	set(&f.AttractionRating, src.AttractionRating)
	set(&f.AttractionReview, src.AttractionReview)
	set(&f.AttractionPrice, src.AttractionPrice)
}

// FavoriteWeather Model
type FavoriteWeather struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	UserID               uint   `gorm:"not null;uniqueIndex:idx_fav_weather_owner_key,priority:1" json:"userID"`
	CountryName          string `gorm:"size:128;not null;uniqueIndex:idx_fav_weather_owner_key,priority:2" json:"countryName" binding:"required,notblank"`
	CountryFlag          string `gorm:"size:512;not null" json:"countryFlag" binding:"required,notblank"`
	WeatherDate          string `gorm:"size:32;not null;uniqueIndex:idx_fav_weather_owner_key,priority:3" json:"weatherDate" binding:"required,notblank"`
	WeatherConditionText string `gorm:"size:128;not null" json:"weatherConditionText" binding:"required,notblank"`
	WeatherConditionIcon string `gorm:"size:512;not null" json:"weatherConditionIcon" binding:"required,notblank"`
	WeatherAvgTemp       string `gorm:"size:16;not null" json:"weatherAvgTemp" binding:"required,notblank"`
	WeatherMaxTemp       string `gorm:"size:16;not null" json:"weatherMaxTemp" binding:"required,notblank"`
	WeatherMinTemp       string `gorm:"size:16;not null" json:"weatherMinTemp" binding:"required,notblank"`
	WeatherHumidity      string `gorm:"size:16;not null" json:"weatherHumidity" binding:"required,notblank"`
	WeatherWind          string `gorm:"size:16;not null" json:"weatherWind" binding:"required,notblank"`
}

func (f *FavoriteWeather) GetID() uint               { return f.ID }
func (f *FavoriteWeather) OwnerID() uint             { return f.UserID }
func (f *FavoriteWeather) PrepareInsert(userID uint) { f.ID, f.UserID = 0, userID }
func (f *FavoriteWeather) Label() string             { return "Weather" }

func (f *FavoriteWeather) NaturalKey() map[string]any {
	return map[string]any{"country_name": f.CountryName, "weather_date": f.WeatherDate}
}

// ApplyEdits copies the editable fields from src. Country, date and icon are fixed.
func (f *FavoriteWeather) ApplyEdits(src *FavoriteWeather) {
	set(&f.WeatherConditionText, src.WeatherConditionText)
	set(&f.WeatherAvgTemp, src.WeatherAvgTemp)
	set(&f.WeatherMaxTemp, src.WeatherMaxTemp)
	set(&f.WeatherMinTemp, src.WeatherMinTemp)
	set(&f.WeatherHumidity, src.WeatherHumidity)
	set(&f.WeatherWind, src.WeatherWind)
}

// set overwrites dst only when the edit carries a value
func set(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
