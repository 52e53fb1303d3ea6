// ABOUTME: Tests for the Mood enum, its lookup tables, and TimeOfDay buckets.
// ABOUTME: Unknown tags must map to defaults rather than fail.
package models

import (
	"testing"
	"time"
)

func TestMoodTables(t *testing.T) {
	tests := []struct {
		mood      Mood
		wantScore int
		wantColor Color
		wantEmoji string
	}{
		{MoodExcited, 100, ColorYellow, "🤩"},
		{MoodEnergetic, 90, ColorPurple, "⚡"},
		{MoodHappy, 80, ColorGreen, "😊"},
		{MoodCalm, 60, ColorBlue, "😌"},
		{MoodAnxious, 40, ColorRed, "😰"},
		{MoodSad, 30, ColorGray, "😢"},
		{Mood("unknown_tag"), 50, ColorGray, "😊"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			if got := tt.mood.Score(); got != tt.wantScore {
				t.Errorf("Score() = %d, want %d", got, tt.wantScore)
			}
			if got := tt.mood.Color(); got != tt.wantColor {
				t.Errorf("Color() = %s, want %s", got, tt.wantColor)
			}
			if got := tt.mood.Emoji(); got != tt.wantEmoji {
				t.Errorf("Emoji() = %s, want %s", got, tt.wantEmoji)
			}
		})
	}
}

func TestAllMoodsHaveLabels(t *testing.T) {
	for _, m := range AllMoods {
		for _, lang := range []string{"fr", "en"} {
			if _, ok := moodLabels[lang][m]; !ok {
				t.Errorf("mood %s has no %s label", m, lang)
			}
		}
	}
	if got := MoodCalm.Label("de"); got != "Calm" {
		t.Errorf("Label(de) = %s, want English fallback", got)
	}
	if got := MoodSad.Label("fr"); got != "Triste" {
		t.Errorf("Label(fr) = %s, want Triste", got)
	}
}

func TestParseMood(t *testing.T) {
	tests := []struct {
		in     string
		want   Mood
		wantOK bool
	}{
		{"happy", MoodHappy, true},
		{"  Excited ", MoodExcited, true},
		{"ANXIOUS", MoodAnxious, true},
		{"grumpy", MoodUnknown, false},
		{"", MoodUnknown, false},
		{"unknown", MoodUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMood(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseMood(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
			if IsValidMood(tt.in) != tt.wantOK {
				t.Errorf("IsValidMood(%q) = %v, want %v", tt.in, !tt.wantOK, tt.wantOK)
			}
		})
	}
}

func TestIsPositive(t *testing.T) {
	for _, m := range AllMoods {
		want := m == MoodExcited || m == MoodHappy
		if m.IsPositive() != want {
			t.Errorf("%s.IsPositive() = %v, want %v", m, !want, want)
		}
	}
	if MoodUnknown.IsPositive() {
		t.Error("unknown should not be positive")
	}
}

func TestTimeOfDayAt(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night},
		{5, Night},
		{6, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{20, Evening},
		{21, Night},
		{23, Night},
	}

	for _, tt := range tests {
		got := TimeOfDayAt(time.Date(2025, 6, 11, tt.hour, 30, 0, 0, time.UTC))
		if got != tt.want {
			t.Errorf("TimeOfDayAt(%02d:30) = %s, want %s", tt.hour, got, tt.want)
		}
	}
	if !IsValidTimeOfDay("evening") || IsValidTimeOfDay("dusk") {
		t.Error("IsValidTimeOfDay mismatch")
	}
}
