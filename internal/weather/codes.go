package weather

// WMO weather interpretation codes as used by the forecast provider.
var codeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

var dayIcons = map[int]string{
	0: "☀️", 1: "🌤️", 2: "⛅", 3: "☁️",
	45: "🌫️", 48: "🌫️",
	51: "🌦️", 53: "🌦️", 55: "🌦️",
	56: "🌨️", 57: "🌨️",
	61: "🌧️", 63: "🌧️", 65: "⛈️",
	66: "🌨️", 67: "🌨️",
	71: "❄️", 73: "❄️", 75: "❄️", 77: "❄️",
	80: "🌦️", 81: "🌧️", 82: "⛈️",
	85: "🌨️", 86: "🌨️",
	95: "⛈️", 96: "⛈️", 99: "⛈️",
}

var nightIcons = map[int]string{
	0: "🌙", 1: "🌙", 2: "☁️", 3: "☁️",
	45: "🌫️", 48: "🌫️",
	51: "🌦️", 53: "🌦️", 55: "🌦️",
	56: "🌨️", 57: "🌨️",
	61: "🌧️", 63: "🌧️", 65: "⛈️",
	66: "🌨️", 67: "🌨️",
	71: "❄️", 73: "❄️", 75: "❄️", 77: "❄️",
	80: "🌦️", 81: "🌧️", 82: "⛈️",
	85: "🌨️", 86: "🌨️",
	95: "⛈️", 96: "⛈️", 99: "⛈️",
}

// Describe returns the human-readable description for a weather code.
// Codes outside the known set yield "Unknown", never an error.
func Describe(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

// Icon returns the display glyph for a weather code, with separate day and
// night sets. Unknown codes yield the fallback glyph.
func Icon(code int, isDay bool) string {
	icons := dayIcons
	if !isDay {
		icons = nightIcons
	}
	if icon, ok := icons[code]; ok {
		return icon
	}
	return "❓"
}

// UVLevel buckets a UV index into its risk level. Buckets are half-open
// intervals: [0,3) Low, [3,6) Moderate, [6,8) High, [8,11) Very High,
// [11,∞) Extreme.
func UVLevel(index float64) string {
	switch {
	case index < 3:
		return "Low"
	case index < 6:
		return "Moderate"
	case index < 8:
		return "High"
	case index < 11:
		return "Very High"
	default:
		return "Extreme"
	}
}
