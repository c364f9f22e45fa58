package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequired(t *testing.T) {
	tests := []struct {
		name string
		fav  Favorite
		want string // empty when the record is complete
	}{
		{
			name: "country complete",
			fav: &FavoriteCountry{
				CountryName: "Japan", CountryFlag: "url", CountryRegion: "Asia", CountryCapital: "Tokyo",
				CountryLanguage: "Japanese", CountryTranslations: "...", CountryCurrency: "JPY",
			},
		},
		{
			name: "country missing name and currency",
			fav: &FavoriteCountry{
				CountryFlag: "url", CountryRegion: "Asia", CountryCapital: "Tokyo",
				CountryLanguage: "Japanese", CountryTranslations: "...",
			},
			want: "All fields are required: countryName, countryCurrency",
		},
		{
			name: "country with unicode blank capital",
			fav: &FavoriteCountry{
				CountryName: "Japan", CountryFlag: "url", CountryRegion: "Asia", CountryCapital: "\u00a0\u3000",
				CountryLanguage: "Japanese", CountryTranslations: "...", CountryCurrency: "JPY",
			},
			want: "All fields are required: countryCapital",
		},
		{
			name: "attraction empty",
			fav:  &FavoriteAttraction{},
			want: "All fields are required: countryName, countryFlag, attractionTitle, attractionDescription, " +
				"attractionRating, attractionReview, attractionPrice, attractionThumbnail",
		},
		{
			name: "weather missing wind",
			fav: &FavoriteWeather{
				CountryName: "Japan", CountryFlag: "url", WeatherDate: "2025-05-01", WeatherConditionText: "Sunny",
				WeatherConditionIcon: "icon", WeatherAvgTemp: "20", WeatherMaxTemp: "25", WeatherMinTemp: "15",
				WeatherHumidity: "40",
			},
			want: "All fields are required: weatherWind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequired(tt.fav)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRequiredFieldsErrorPassesOtherErrors(t *testing.T) {
	assert.NoError(t, RequiredFieldsError(nil))
	other := errors.New("unexpected EOF")
	assert.Equal(t, other, RequiredFieldsError(other))
}

func TestNaturalKey(t *testing.T) {
	assert.Equal(t, map[string]any{"country_name": "Japan"},
		(&FavoriteCountry{CountryName: "Japan"}).NaturalKey())
	assert.Equal(t, map[string]any{"country_name": "Japan", "attraction_title": "Fuji"},
		(&FavoriteAttraction{CountryName: "Japan", AttractionTitle: "Fuji"}).NaturalKey())
	assert.Equal(t, map[string]any{"country_name": "Japan", "weather_date": "2025-05-01"},
		(&FavoriteWeather{CountryName: "Japan", WeatherDate: "2025-05-01"}).NaturalKey())
}

func TestApplyEditsKeepsNaturalKey(t *testing.T) {
	rec := &FavoriteAttraction{
		ID: 7, UserID: 1, CountryName: "Japan", AttractionTitle: "Fuji",
		AttractionDescription: "old", AttractionRating: "4.5", AttractionPrice: "Free",
	}
	rec.ApplyEdits(&FavoriteAttraction{
		ID: 99, UserID: 2, CountryName: "France", AttractionTitle: "Louvre",
		AttractionDescription: "new", AttractionRating: "", AttractionPrice: "\u00a0\u2003\t",
	})

	assert.Equal(t, uint(7), rec.ID)
	assert.Equal(t, uint(1), rec.UserID)
	assert.Equal(t, "Japan", rec.CountryName)
	assert.Equal(t, "Fuji", rec.AttractionTitle)
	assert.Equal(t, "new", rec.AttractionDescription)
	assert.Equal(t, "4.5", rec.AttractionRating)
	assert.Equal(t, "Free", rec.AttractionPrice, "unicode whitespace is a blank edit")
}

func TestErrorKinds(t *testing.T) {
	err := Conflict("Country already in favourites")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, "Country already in favourites", err.Error())

	var de *Error
	assert.True(t, errors.As(Forbidden("nope"), &de))
	assert.Equal(t, ErrForbidden, de.Kind)
}
