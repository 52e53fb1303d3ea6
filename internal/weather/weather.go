// ABOUTME: OpenWeatherMap current-weather client with a per-city TTL cache.
// ABOUTME: Never fails: no key yields mock data, upstream errors yield fallback data.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/harperreed/mood/internal/logging"
	"github.com/harperreed/mood/internal/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

const (
	cacheSize      = 128
	cacheTTL       = 10 * time.Minute
	requestTimeout = 10 * time.Second
)

var conditionMap = map[string]string{
	"Clear":        models.ConditionSunny,
	"Clouds":       models.ConditionCloudy,
	"Rain":         models.ConditionRainy,
	"Drizzle":      models.ConditionRainy,
	"Thunderstorm": models.ConditionStormy,
	"Snow":         models.ConditionSnowy,
	"Mist":         models.ConditionFoggy,
	"Fog":          models.ConditionFoggy,
	"Haze":         models.ConditionFoggy,
}

// MapCondition normalizes an OpenWeatherMap "main" group to a condition.
// Unrecognized groups are cloudy.
func MapCondition(main string) string {
	if c, ok := conditionMap[main]; ok {
		return c
	}
	return models.ConditionCloudy
}

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	DefaultCity string
	HTTPClient  *http.Client
	Logger      *zap.SugaredLogger
}

// Client fetches current weather. Safe for concurrent use.
type Client struct {
	apiKey      string
	baseURL     string
	defaultCity string
	http        *http.Client
	log         *zap.SugaredLogger
	cache       *expirable.LRU[string, models.Weather]
}

// New creates a Client from opts, filling in defaults.
func New(opts Options) *Client {
	c := &Client{
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		defaultCity: opts.DefaultCity,
		http:        opts.HTTPClient,
		log:         opts.Logger,
		cache:       expirable.NewLRU[string, models.Weather](cacheSize, nil, cacheTTL),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.defaultCity == "" {
		c.defaultCity = models.DefaultWeatherLocation
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: requestTimeout}
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	if c.apiKey == "" {
		c.log.Warnw("weather API key not set, serving mock weather")
	}
	return c
}

// HasAPIKey reports whether live lookups are enabled.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Current returns the weather for city, or the default city when empty.
func (c *Client) Current(ctx context.Context, city string) models.Weather {
	city = strings.TrimSpace(city)
	if city == "" {
		city = c.defaultCity
	}

	if c.apiKey == "" {
		return Mock(city)
	}

	key := strings.ToLower(city)
	if w, ok := c.cache.Get(key); ok {
		return w
	}

	w, err := c.fetch(ctx, city)
	if err != nil {
		c.log.Errorw("weather lookup failed", "city", city, "error", err)
		return Fallback(city)
	}
	c.cache.Add(key, w)
	return w
}

// Mock is served when no API key is configured.
func Mock(city string) models.Weather {
	return models.Weather{
		Temperature: 22,
		Condition:   models.ConditionSunny,
		Description: "Sunny",
		Icon:        "01d",
		Humidity:    65,
		WindSpeed:   5,
		City:        city,
		Source:      models.WeatherSourceMock,
	}
}

// Fallback is served when the upstream lookup fails.
func Fallback(city string) models.Weather {
	return models.Weather{
		Temperature: 20,
		Condition:   models.ConditionCloudy,
		Description: "Cloudy",
		Icon:        "02d",
		Humidity:    70,
		WindSpeed:   10,
		City:        city,
		Source:      models.WeatherSourceFallback,
	}
}

type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (c *Client) fetch(ctx context.Context, city string) (models.Weather, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return models.Weather{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Weather{}, fmt.Errorf("request weather: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.Weather{}, fmt.Errorf("weather API error: %d", resp.StatusCode)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Weather{}, fmt.Errorf("decode weather: %w", err)
	}
	if len(body.Weather) == 0 {
		return models.Weather{}, fmt.Errorf("weather API returned no conditions")
	}

	name := body.Name
	if name == "" {
		name = city
	}
	return models.Weather{
		Temperature: int(math.Round(body.Main.Temp)),
		Condition:   MapCondition(body.Weather[0].Main),
		Description: body.Weather[0].Description,
		Icon:        body.Weather[0].Icon,
		Humidity:    body.Main.Humidity,
		WindSpeed:   int(math.Round(body.Wind.Speed * 3.6)),
		City:        name,
		Source:      models.WeatherSourceLive,
	}, nil
}
