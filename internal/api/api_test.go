package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wanderlist/internal/db"
	"wanderlist/internal/domain"
	"wanderlist/internal/explore"
	"wanderlist/internal/middleware"
	"wanderlist/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeExplorer serves canned upstream data, or err when set
type fakeExplorer struct {
	err      error
	currency string
	lookups  int // CurrencyCode calls
}

func (f *fakeExplorer) CurrencyCode(ctx context.Context, country string) (string, error) {
	f.lookups++
	if f.err != nil {
		return "", f.err
	}
	return f.currency, nil
}

func (f *fakeExplorer) Countries(ctx context.Context) ([]explore.CountrySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []explore.CountrySummary{{Name: "Japan", Flag: "jp.png"}}, nil
}

func (f *fakeExplorer) Country(ctx context.Context, name string) (*explore.CountryDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &explore.CountryDetails{Name: name, Region: "Asia", Capital: "Tokyo"}, nil
}

func (f *fakeExplorer) Attractions(ctx context.Context, country string) ([]explore.Sight, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []explore.Sight{{Title: "Mount Fuji"}}, nil
}

func (f *fakeExplorer) Forecast(ctx context.Context, country string, days int) ([]explore.ForecastDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]explore.ForecastDay, days)
	for i := range out {
		out[i] = explore.ForecastDay{Date: "2025-05-01", ConditionText: "Sunny"}
	}
	return out, nil
}

func (f *fakeExplorer) Rates(ctx context.Context, base string) (*explore.Rates, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &explore.Rates{Base: base, Rates: map[string]string{"USD": "0.0069"}}, nil
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	explorer *fakeExplorer
}

// newTestServer builds the full router over an in-memory SQLite database
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newCachedTestServer(t, nil)
}

// newCachedTestServer is newTestServer with a list cache
func newCachedTestServer(t *testing.T, cache *utils.Cache) *testServer {
	t.Helper()
	gdb, err := db.Connect("sqlite", ":memory:", 1)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	ex := &fakeExplorer{currency: "JPY"}
	r := NewRouter(Deps{DB: gdb, Cache: cache, Explorer: ex, JWTSecret: testSecret})
	return &testServer{router: r, db: gdb, explorer: ex}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, name string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/register", "", gin.H{
		"username": name, "email": name + "@example.com",
		"password": "password123", "confirmPassword": "password123", "country": "Japan",
	})
}

func (s *testServer) login(t *testing.T, identifier string) AuthResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/login", "", gin.H{"identifier": identifier, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func japanPayload() gin.H {
	return gin.H{
		"countryName": "Japan", "countryFlag": "url", "countryRegion": "Asia", "countryCapital": "Tokyo",
		"countryLanguage": "Japanese", "countryTranslations": "...", "countryCurrency": "JPY",
	}
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestAliceBobScenario(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	require.Equal(t, http.StatusCreated, s.register(t, "bob").Code)

	alice := s.login(t, "alice")
	assert.NotEmpty(t, alice.Token)
	assert.Equal(t, "alice", alice.User.Username)
	bob := s.login(t, "bob")

	w := s.do(t, http.MethodPost, "/favoriteCountry", alice.Token, japanPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Country added to favourites", body["message"])
	id := uint(body["country"].(map[string]any)["id"].(float64))

	w = s.do(t, http.MethodPost, "/favoriteCountry", alice.Token, japanPayload())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Country already in favourites", decode(t, w)["error"])

	path := "/favoriteCountry/" + jsonID(id)
	w = s.do(t, http.MethodDelete, path, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to delete this item", decode(t, w)["error"])
	assert.Equal(t, int64(1), countRows(t, s.db, &domain.FavoriteCountry{}))

	w = s.do(t, http.MethodDelete, path, alice.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Country deleted successfully", decode(t, w)["message"])
	assert.Equal(t, int64(0), countRows(t, s.db, &domain.FavoriteCountry{}))
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestLoginTokenVerifiesToSameUser(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)

	resp := s.login(t, "alice@example.com")
	identity, err := utils.ParseJWT(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User, identity)

	var user domain.User
	require.NoError(t, s.db.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, user.ID, identity.ID)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)

	w := s.do(t, http.MethodPost, "/login", "", gin.H{"identifier": "nobody", "password": "password123"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/login", "", gin.H{"identifier": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid password", decode(t, w)["error"])
}

func TestRegisterRejects(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)

	tests := []struct {
		name    string
		body    gin.H
		wantErr string
	}{
		{
			name:    "missing country",
			body:    gin.H{"username": "carol", "email": "carol@example.com", "password": "password123", "confirmPassword": "password123"},
			wantErr: "All fields are required",
		},
		{
			name:    "passwords differ",
			body:    gin.H{"username": "carol", "email": "carol@example.com", "password": "password123", "confirmPassword": "password124", "country": "Japan"},
			wantErr: "Passwords do not match",
		},
		{
			name:    "duplicate username",
			body:    gin.H{"username": "alice", "email": "carol@example.com", "password": "password123", "confirmPassword": "password123", "country": "Japan"},
			wantErr: "Username or email already in use",
		},
		{
			name:    "duplicate email",
			body:    gin.H{"username": "carol", "email": "alice@example.com", "password": "password123", "confirmPassword": "password123", "country": "Japan"},
			wantErr: "Username or email already in use",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
		})
	}
	assert.Equal(t, int64(1), countRows(t, s.db, &domain.User{}))
}

func TestRegisterResolvesCurrency(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)

	alice := s.login(t, "alice")
	w := s.do(t, http.MethodGet, "/profile", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)
	assert.Equal(t, "JPY", profile["currency"])
	assert.NotContains(t, profile, "password")

	// A supplied currency is stored as given, without a lookup.
	s.explorer.err = errors.New("upstream down")
	w = s.do(t, http.MethodPost, "/register", "", gin.H{
		"username": "bob", "email": "bob@example.com", "password": "password123",
		"confirmPassword": "password123", "country": "France", "currency": "eur",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterCurrencyLookupFailure(t *testing.T) {
	s := newTestServer(t)
	s.explorer.err = errors.New("upstream down")

	w := s.register(t, "alice")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, int64(0), countRows(t, s.db, &domain.User{}))

	s.explorer.err = explore.ErrNotFound
	w = s.register(t, "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown country", decode(t, w)["error"])
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	s := newTestServer(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		ID: 1, Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredStr, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{"none": "", "malformed": "garbage", "expired": expiredStr} {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/favoriteCountry", token, japanPayload())
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			w = s.do(t, http.MethodGet, "/profile", token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
	assert.Equal(t, int64(0), countRows(t, s.db, &domain.FavoriteCountry{}))
}

func TestFavoriteLifecycle(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	require.Equal(t, http.StatusCreated, s.register(t, "bob").Code)
	alice, bob := s.login(t, "alice"), s.login(t, "bob")

	attraction := gin.H{
		"userID": 999, "countryName": "Japan", "countryFlag": "url", "attractionTitle": "Mount Fuji",
		"attractionDescription": "Volcano", "attractionRating": "4.8", "attractionReview": "1000",
		"attractionPrice": "Free", "attractionThumbnail": "thumb.jpg",
	}
	w := s.do(t, http.MethodPost, "/favoriteAttraction", alice.Token, attraction)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decode(t, w)["attraction"].(map[string]any)
	assert.Equal(t, float64(alice.User.ID), rec["userID"])
	path := "/favoriteAttraction/" + jsonID(uint(rec["id"].(float64)))

	// Round trip through the list, served from the database then unchanged.
	w = s.do(t, http.MethodGet, "/favoriteAttraction", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.FavoriteAttraction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Mount Fuji", list[0].AttractionTitle)
	assert.Equal(t, "thumb.jpg", list[0].AttractionThumbnail)

	w = s.do(t, http.MethodGet, "/favoriteAttraction", bob.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Bob cannot edit Alice's record.
	w = s.do(t, http.MethodPut, path, bob.Token, gin.H{"attractionRating": "1.0"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to update this item", decode(t, w)["error"])

	w = s.do(t, http.MethodPut, path, alice.Token, gin.H{"attractionRating": "4.9", "attractionTitle": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Attraction updated successfully", body["message"])
	updated := body["attraction"].(map[string]any)
	assert.Equal(t, "4.9", updated["attractionRating"])
	assert.Equal(t, "Mount Fuji", updated["attractionTitle"])

	w = s.do(t, http.MethodPut, "/favoriteAttraction/9999", alice.Token, gin.H{"attractionRating": "3"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Attraction not found", decode(t, w)["error"])

	w = s.do(t, http.MethodDelete, "/favoriteAttraction/abc", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteMissingFields(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	alice := s.login(t, "alice")

	w := s.do(t, http.MethodPost, "/favoriteWeather", alice.Token, gin.H{"countryName": "Japan", "weatherDate": "2025-05-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required: countryFlag, weatherConditionText, weatherConditionIcon, "+
		"weatherAvgTemp, weatherMaxTemp, weatherMinTemp, weatherHumidity, weatherWind", decode(t, w)["error"])
	assert.Equal(t, int64(0), countRows(t, s.db, &domain.FavoriteWeather{}))

	w = s.do(t, http.MethodPost, "/favoriteWeather", alice.Token, "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request", decode(t, w)["error"])
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	alice := s.login(t, "alice")

	w := s.do(t, http.MethodPut, "/profile", alice.Token, gin.H{"password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 8 characters long.", decode(t, w)["error"])

	w = s.do(t, http.MethodPut, "/profile", alice.Token, gin.H{"country": "France"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "France", decode(t, w)["country"])
}

func TestExploreRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/countries", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Japan","flag":"jp.png"}]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/weather?country=Japan&days=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["forecast"], 3)

	w = s.do(t, http.MethodGet, "/attractions", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExploreDegrades(t *testing.T) {
	s := newTestServer(t)
	s.explorer.err = errors.New("upstream down")

	w := s.do(t, http.MethodGet, "/attractions?country=Japan", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"country":"Japan","sights":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/weather?country=Japan", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"country":"Japan","forecast":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/countries", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/countries/Japan", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	s.explorer.err = explore.ErrNotFound
	w = s.do(t, http.MethodGet, "/countries/Atlantis", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRates(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	alice := s.login(t, "alice")

	w := s.do(t, http.MethodGet, "/rates", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JPY", decode(t, w)["base"])

	s.explorer.err = errors.New("quota exceeded")
	w = s.do(t, http.MethodGet, "/rates", alice.Token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	require.NoError(t, s.db.Model(&domain.User{}).Where("id = ?", alice.User.ID).Update("currency", "").Error)
	w = s.do(t, http.MethodGet, "/rates", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	w = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
}

func TestLoginRequiresBothFields(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/login", "", gin.H{"identifier": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Identifier and password are required", decode(t, w)["error"])
}

func TestPasswordLongerThanBcryptLimit(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("p", 73)

	w := s.do(t, http.MethodPost, "/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": long,
		"confirmPassword": long, "country": "Japan",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes long.", decode(t, w)["error"])
	assert.Equal(t, int64(0), countRows(t, s.db, &domain.User{}))

	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	alice := s.login(t, "alice")
	w = s.do(t, http.MethodPut, "/profile", alice.Token, gin.H{"password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes long.", decode(t, w)["error"])
}

func TestUsernameCannotTakeAnotherUsersEmail(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "bob").Code)

	w := s.do(t, http.MethodPost, "/register", "", gin.H{
		"username": "bob@example.com", "email": "mallory@example.com", "password": "password123",
		"confirmPassword": "password123", "country": "Japan",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username must not contain @", decode(t, w)["error"])

	bob := s.login(t, "bob@example.com")
	assert.Equal(t, "bob", bob.User.Username)
}

func TestRegisterChecksLocallyBeforeCurrencyLookup(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	s.explorer.err = errors.New("upstream down")
	s.explorer.lookups = 0

	tests := []struct {
		name    string
		body    gin.H
		wantErr string
	}{
		{
			name:    "duplicate username",
			body:    gin.H{"username": "alice", "email": "carol@example.com", "password": "password123", "confirmPassword": "password123", "country": "Japan"},
			wantErr: "Username or email already in use",
		},
		{
			name:    "short password",
			body:    gin.H{"username": "carol", "email": "carol@example.com", "password": "short", "confirmPassword": "short", "country": "Japan"},
			wantErr: "Password must be at least 8 characters long.",
		},
		{
			name:    "malformed email",
			body:    gin.H{"username": "carol", "email": "carol", "password": "password123", "confirmPassword": "password123", "country": "Japan"},
			wantErr: "Invalid email address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
		})
	}
	assert.Zero(t, s.explorer.lookups)
}

func TestCurrentUserIDReadsIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.UserIDKey, uint(7))
	_, ok := currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set(middleware.IdentityKey, domain.Identity{ID: 7, Username: "alice"})
	id, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestFavoriteListCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	s := newCachedTestServer(t, utils.NewCache(rdb, "test:"))
	require.Equal(t, http.StatusCreated, s.register(t, "alice").Code)
	alice := s.login(t, "alice")

	w := s.do(t, http.MethodGet, "/favoriteCountry", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/favoriteCountry", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.True(t, mr.Exists("test:"+listCacheKey("Country", alice.User.ID)))

	// A mutation drops the cached list so the next read sees it
	w = s.do(t, http.MethodPost, "/favoriteCountry", alice.Token, japanPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.False(t, mr.Exists("test:"+listCacheKey("Country", alice.User.ID)))

	w = s.do(t, http.MethodGet, "/favoriteCountry", alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	var list []domain.FavoriteCountry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Japan", list[0].CountryName)

	// Entries expire with the list TTL
	mr.FastForward(listCacheTTL + time.Second)
	w = s.do(t, http.MethodGet, "/favoriteCountry", alice.Token, nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
}
