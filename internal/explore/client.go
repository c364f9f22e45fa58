package explore

import (
	"context"       // Request cancellation
	"encoding/json" // Upstream payloads
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping
	"io"            // Error body reads
	"net/http"      // Upstream calls
	"net/url"       // Query building
	"sort"          // Stable output order
	"strconv"       // Query integers
	"strings"       // Cache keys
	"time"          // Timeouts and TTLs

	"wanderlist/internal/utils" // Redis cache

	"github.com/sirupsen/logrus" // Logging library
)

// ErrNotFound is returned when an upstream API answers 404
var ErrNotFound = errors.New("not found upstream")

// Options configures the upstream endpoints and keys
type Options struct {
	CountriesURL string
	SerpAPIURL   string
	SerpAPIKey   string
	WeatherURL   string
	WeatherKey   string
	CurrencyURL  string
	CurrencyKey  string
	CacheTTL     time.Duration
	Timeout      time.Duration
}

// Client proxies the third-party country, attraction, weather and currency APIs
type Client struct {
	opts  Options
	http  *http.Client
	cache *utils.Cache
}

// NewClient creates a new upstream client. cache may be a no-op cache.
func NewClient(opts Options, cache *utils.Cache) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		opts:  opts,
		http:  &http.Client{Timeout: opts.Timeout},
		cache: cache,
	}
}

// ---- Upstream response types ----

type restCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	Region       string                       `json:"region"`
	Capital      []string                     `json:"capital"`
	Languages    map[string]string            `json:"languages"`
	Translations map[string]map[string]string `json:"translations"`
	Currencies   map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

type serpResponse struct {
	TopSights struct {
		Sights []Sight `json:"sights"`
	} `json:"top_sights"`
}

type weatherResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC    float64 `json:"avgtemp_c"`
				MaxTempC    float64 `json:"maxtemp_c"`
				MinTempC    float64 `json:"mintemp_c"`
				AvgHumidity float64 `json:"avghumidity"`
				MaxWindKph  float64 `json:"maxwind_kph"`
				Condition   struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// ---- Types served to callers ----

// CountrySummary is an entry of the country list
type CountrySummary struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// CountryDetails is the snapshot a country favorite is built from
type CountryDetails struct {
	Name         string            `json:"name"`
	OfficialName string            `json:"officialName"`
	Flag         string            `json:"flag"`
	Region       string            `json:"region"`
	Capital      string            `json:"capital"`
	Languages    []string          `json:"languages"`
	Translations map[string]string `json:"translations"`
	Currencies   []Currency        `json:"currencies"`
}

// Currency is an ISO 4217 code with its display name
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Sight is a top attraction as SerpAPI reports it
type Sight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Price       string  `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Link        string  `json:"link"`
}

// ForecastDay is one day of a weather forecast
type ForecastDay struct {
	Date          string  `json:"date"`
	ConditionText string  `json:"conditionText"`
	ConditionIcon string  `json:"conditionIcon"`
	AvgTemp       float64 `json:"avgTemp"`
	MaxTemp       float64 `json:"maxTemp"`
	MinTemp       float64 `json:"minTemp"`
	Humidity      float64 `json:"humidity"`
	Wind          float64 `json:"wind"`
}

// Rates are exchange rates relative to Base
type Rates struct {
	Date  string            `json:"date"`
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}

// ---- Client methods ----

// Countries lists every country with its flag
func (c *Client) Countries(ctx context.Context) ([]CountrySummary, error) {
	u := c.opts.CountriesURL + "/all?fields=name,flags"

	var raw []restCountry
	if err := c.getJSON(ctx, "countries:all", u, &raw); err != nil {
		return nil, err
	}
	out := make([]CountrySummary, 0, len(raw))
	for _, rc := range raw {
		out = append(out, CountrySummary{Name: rc.Name.Common, Flag: rc.Flags.PNG})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Country fetches details for an exact country name
func (c *Client) Country(ctx context.Context, name string) (*CountryDetails, error) {
	u := fmt.Sprintf("%s/name/%s?fullText=true&fields=name,region,capital,languages,translations,currencies,flags",
		c.opts.CountriesURL, url.PathEscape(name))

	var raw []restCountry
	if err := c.getJSON(ctx, "countries:name:"+strings.ToLower(name), u, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	rc := raw[0]

	d := &CountryDetails{
		Name:         rc.Name.Common,
		OfficialName: rc.Name.Official,
		Flag:         rc.Flags.PNG,
		Region:       rc.Region,
		Translations: map[string]string{},
	}
	if len(rc.Capital) > 0 {
		d.Capital = rc.Capital[0]
	}
	for _, lang := range rc.Languages {
		d.Languages = append(d.Languages, lang)
	}
	sort.Strings(d.Languages)
	for code, tr := range rc.Translations {
		d.Translations[code] = tr["common"]
	}
	for code, cur := range rc.Currencies {
		d.Currencies = append(d.Currencies, Currency{Code: code, Name: cur.Name, Symbol: cur.Symbol})
	}
	sort.Slice(d.Currencies, func(i, j int) bool { return d.Currencies[i].Code < d.Currencies[j].Code })
	return d, nil
}

// CurrencyCode resolves the primary currency of a country
func (c *Client) CurrencyCode(ctx context.Context, country string) (string, error) {
	d, err := c.Country(ctx, country)
	if err != nil {
		return "", err
	}
	if len(d.Currencies) == 0 {
		return "", fmt.Errorf("country %q has no currency", country)
	}
	return d.Currencies[0].Code, nil
}

// Attractions returns the top sights SerpAPI knows for a country
func (c *Client) Attractions(ctx context.Context, country string) ([]Sight, error) {
	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", country+" Attractions")
	q.Set("google_domain", "google.com")
	q.Set("api_key", c.opts.SerpAPIKey)

	var raw serpResponse
	if err := c.getJSON(ctx, "attractions:"+strings.ToLower(country), c.opts.SerpAPIURL+"?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if raw.TopSights.Sights == nil {
		return []Sight{}, nil
	}
	return raw.TopSights.Sights, nil
}

// Forecast returns a daily forecast for a country, days is clamped to 1..14
func (c *Client) Forecast(ctx context.Context, country string, days int) ([]ForecastDay, error) {
	days = min(max(days, 1), 14)
	q := url.Values{}
	q.Set("key", c.opts.WeatherKey)
	q.Set("q", country)
	q.Set("days", strconv.Itoa(days))

	var raw weatherResponse
	key := "weather:" + strings.ToLower(country) + ":" + strconv.Itoa(days)
	if err := c.getJSON(ctx, key, c.opts.WeatherURL+"/forecast.json?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	out := make([]ForecastDay, 0, len(raw.Forecast.ForecastDay))
	for _, fd := range raw.Forecast.ForecastDay {
		out = append(out, ForecastDay{
			Date:          fd.Date,
			ConditionText: fd.Day.Condition.Text,
			ConditionIcon: fd.Day.Condition.Icon,
			AvgTemp:       fd.Day.AvgTempC,
			MaxTemp:       fd.Day.MaxTempC,
			MinTemp:       fd.Day.MinTempC,
			Humidity:      fd.Day.AvgHumidity,
			Wind:          fd.Day.MaxWindKph,
		})
	}
	return out, nil
}

// Rates returns the latest exchange rates against base
func (c *Client) Rates(ctx context.Context, base string) (*Rates, error) {
	base = strings.ToUpper(base)
	q := url.Values{}
	q.Set("apikey", c.opts.CurrencyKey)
	q.Set("base", base)

	var r Rates
	if err := c.getJSON(ctx, "rates:"+base, c.opts.CurrencyURL+"/rates/latest?"+q.Encode(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// getJSON serves dest from the cache or fetches and caches it
func (c *Client) getJSON(ctx context.Context, cacheKey, rawURL string, dest any) error {
	if found, err := c.cache.Get(ctx, cacheKey, dest); err == nil && found {
		return nil
	} else if err != nil {
		logrus.WithError(err).WithField("key", cacheKey).Warn("Proxy cache read failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}

	if err := c.cache.Set(ctx, cacheKey, dest, c.opts.CacheTTL); err != nil {
		logrus.WithError(err).WithField("key", cacheKey).Warn("Proxy cache write failed")
	}
	return nil
}
