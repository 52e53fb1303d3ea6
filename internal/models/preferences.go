// ABOUTME: Per-user preferences: weather city, theme, notifications, language.
// ABOUTME: PreferencesPatch carries partial updates with nil meaning "unchanged".
package models

// Default preference values for users without stored preferences.
const (
	DefaultWeatherLocation = "Paris"
	DefaultTheme           = "auto"
	DefaultLanguage        = "fr"
)

// Preferences holds user settings.
type Preferences struct {
	UserID          int64  `json:"userId"`
	WeatherLocation string `json:"weatherLocation"`
	Theme           string `json:"theme"`
	Notifications   bool   `json:"notifications"`
	Language        string `json:"language"`
}

// DefaultPreferences returns the preferences a new user starts with.
func DefaultPreferences(userID int64) *Preferences {
	if userID <= 0 {
		userID = GuestUserID
	}
	return &Preferences{
		UserID:          userID,
		WeatherLocation: DefaultWeatherLocation,
		Theme:           DefaultTheme,
		Notifications:   true,
		Language:        DefaultLanguage,
	}
}

// PreferencesPatch is a partial preferences update.
type PreferencesPatch struct {
	WeatherLocation *string `json:"weatherLocation,omitempty"`
	Theme           *string `json:"theme,omitempty"`
	Notifications   *bool   `json:"notifications,omitempty"`
	Language        *string `json:"language,omitempty"`
}

// Apply copies the set fields of the patch onto p.
func (patch PreferencesPatch) Apply(p *Preferences) {
	if patch.WeatherLocation != nil && *patch.WeatherLocation != "" {
		p.WeatherLocation = *patch.WeatherLocation
	}
	if patch.Theme != nil && *patch.Theme != "" {
		p.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		p.Notifications = *patch.Notifications
	}
	if patch.Language != nil && *patch.Language != "" {
		p.Language = *patch.Language
	}
}

// Patch returns a patch that sets every field to p's values.
func (p *Preferences) Patch() PreferencesPatch {
	loc, theme, notif, lang := p.WeatherLocation, p.Theme, p.Notifications, p.Language
	return PreferencesPatch{
		WeatherLocation: &loc,
		Theme:           &theme,
		Notifications:   &notif,
		Language:        &lang,
	}
}
