// ABOUTME: Advice and music suggestions keyed by time of day and weather.
// ABOUTME: Static tables; unknown inputs fall back to sensible defaults.
package theme

import "github.com/harperreed/mood/internal/models"

// DefaultAdvice is shown when the time of day is unknown.
const DefaultAdvice = "Take a moment for yourself today. You deserve it!"

var advice = map[models.TimeOfDay]map[string]string{
	models.Morning: {
		models.ConditionSunny:  "Enjoy this sunny morning with a short walk. Fresh air and daylight will lift your mood! ☀️",
		models.ConditionCloudy: "Even under a cloudy sky, this is a perfect time for something creative indoors. Maybe draw or write?",
		models.ConditionRainy:  "The sound of rain is soothing. Make a hot tea and enjoy some cozy downtime.",
	},
	models.Afternoon: {
		models.ConditionSunny:  "The afternoon is ideal for an active break. How about a short walk or some gardening?",
		models.ConditionCloudy: "A great moment to focus on your projects. Soft light helps concentration.",
		models.ConditionRainy:  "A rainy afternoon is perfect for a hands-on hobby or catching up on reading.",
	},
	models.Evening: {
		models.ConditionSunny:  "Enjoy this beautiful evening outside. A sunset does you good!",
		models.ConditionCloudy: "The ideal time to cook a good meal and spend time with loved ones.",
		models.ConditionRainy:  "A rainy evening made for a movie or a good book with a warm drink.",
	},
	models.Night: {
		models.ConditionSunny:  "Enjoy the clear night, look at the stars and unwind before bed.",
		models.ConditionCloudy: "A good time to get ready for sleep with a relaxing routine.",
		models.ConditionRainy:  "Rain is soothing for sleep. Make yourself a calming herbal tea.",
	},
}

// Advice returns a tip for the time of day and weather condition.
// Conditions without a tip use the cloudy one.
func Advice(tod models.TimeOfDay, condition string) string {
	byCondition, ok := advice[tod]
	if !ok {
		return DefaultAdvice
	}
	if a, ok := byCondition[condition]; ok {
		return a
	}
	return byCondition[models.ConditionCloudy]
}

// Track is a playlist suggestion.
type Track struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var music = map[models.TimeOfDay][]Track{
	models.Morning: {
		{"Morning Jazz", "Energizing playlist"},
		{"Sunny Lo-Fi", "Productive relaxation"},
	},
	models.Afternoon: {
		{"Afternoon Chill", "Optimal focus"},
		{"Focus Flow", "Zen productivity"},
	},
	models.Evening: {
		{"Evening Vibes", "Evening unwind"},
		{"Sunset Chill", "Cozy atmosphere"},
	},
	models.Night: {
		{"Night Calm", "Deep relaxation"},
		{"Sleep Sounds", "Getting ready for sleep"},
	},
}

// Music returns two playlists for the time of day, the morning ones when unknown.
func Music(tod models.TimeOfDay) []Track {
	tracks, ok := music[tod]
	if !ok {
		tracks = music[models.Morning]
	}
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

var weatherIcons = map[string]string{
	models.ConditionSunny:  "☀️",
	models.ConditionCloudy: "☁️",
	models.ConditionRainy:  "🌧️",
	models.ConditionStormy: "⛈️",
	models.ConditionSnowy:  "❄️",
	models.ConditionFoggy:  "🌫️",
}

// WeatherIcon returns an emoji for a condition, a cloud when unknown.
func WeatherIcon(condition string) string {
	if icon, ok := weatherIcons[condition]; ok {
		return icon
	}
	return weatherIcons[models.ConditionCloudy]
}
