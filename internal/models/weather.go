// ABOUTME: Weather snapshot attached to entries and served by the weather proxy.
// ABOUTME: Source records whether the data is live, mock, or fallback.
package models

// Weather conditions after normalization.
const (
	ConditionSunny  = "sunny"
	ConditionCloudy = "cloudy"
	ConditionRainy  = "rainy"
	ConditionStormy = "stormy"
	ConditionSnowy  = "snowy"
	ConditionFoggy  = "foggy"
)

// Where a Weather value came from.
const (
	WeatherSourceLive     = "live"
	WeatherSourceMock     = "mock"
	WeatherSourceFallback = "fallback"
)

// Weather is the current weather for a city.
type Weather struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	City        string `json:"city"`
	Source      string `json:"source,omitempty"`
}
