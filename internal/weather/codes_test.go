package weather

import "testing"

func TestDescribeKnownCodes(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{45, "Fog"},
		{55, "Dense drizzle"},
		{65, "Heavy rain"},
		{77, "Snow grains"},
		{82, "Violent rain showers"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm with heavy hail"},
	}

	for _, tt := range tests {
		if got := Describe(tt.code); got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDescribeUnknownCode(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 100, 1000} {
		if got := Describe(code); got != "Unknown" {
			t.Errorf("Describe(%d) = %q, want %q", code, got, "Unknown")
		}
	}
}

func TestIconDayNight(t *testing.T) {
	tests := []struct {
		code  int
		isDay bool
		want  string
	}{
		{0, true, "☀️"},
		{0, false, "🌙"},
		{2, true, "⛅"},
		{2, false, "☁️"},
		{61, true, "🌧️"},
		{61, false, "🌧️"},
		{95, true, "⛈️"},
	}

	for _, tt := range tests {
		if got := Icon(tt.code, tt.isDay); got != tt.want {
			t.Errorf("Icon(%d, %v) = %q, want %q", tt.code, tt.isDay, got, tt.want)
		}
	}
}

func TestIconUnknownCode(t *testing.T) {
	if got := Icon(1234, true); got != "❓" {
		t.Errorf("Icon(1234, true) = %q, want fallback glyph", got)
	}
	if got := Icon(1234, false); got != "❓" {
		t.Errorf("Icon(1234, false) = %q, want fallback glyph", got)
	}
}

// TestUVLevelBoundaries checks that every bucket is a half-open interval,
// inclusive on its lower bound.
func TestUVLevelBoundaries(t *testing.T) {
	tests := []struct {
		index float64
		want  string
	}{
		{0, "Low"},
		{2.9, "Low"},
		{3.0, "Moderate"},
		{5.9, "Moderate"},
		{6.0, "High"},
		{7.9, "High"},
		{8.0, "Very High"},
		{10.9, "Very High"},
		{11.0, "Extreme"},
		{14.2, "Extreme"},
	}

	for _, tt := range tests {
		if got := UVLevel(tt.index); got != tt.want {
			t.Errorf("UVLevel(%v) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
