package weather

import (
	"encoding/json"
	"strings"
)

// UnitSystem selects the measurement units applied to a single request.
type UnitSystem string

const (
	UnitMetric   UnitSystem = "metric"
	UnitImperial UnitSystem = "imperial"
)

// ParseUnit maps the API-facing temperature unit names onto a UnitSystem.
// Anything other than "fahrenheit" falls back to metric.
func ParseUnit(s string) UnitSystem {
	if strings.EqualFold(s, "fahrenheit") {
		return UnitImperial
	}
	return UnitMetric
}

// TemperatureUnit returns the display symbol for temperatures in this system.
func (u UnitSystem) TemperatureUnit() string {
	if u == UnitImperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedUnit returns the display symbol for wind speeds in this system.
func (u UnitSystem) WindSpeedUnit() string {
	if u == UnitImperial {
		return "mph"
	}
	return "km/h"
}

// Location is a resolved place as returned by the geocoder.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// Metric is a float measurement that may be absent from an upstream payload.
// It marshals as its numeric value, or as the string "unavailable" when the
// provider did not report it. A reported zero is a valid value.
type Metric struct {
	Value float64
	Valid bool
}

// Available wraps a reported value.
func Available(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Unavailable is the sentinel for a measurement the provider did not report.
func Unavailable() Metric {
	return Metric{}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal("unavailable")
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		m.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// AirQuality holds the current air quality readings. Each field degrades to
// "unavailable" independently when the air quality call fails or omits it.
type AirQuality struct {
	AQI  Metric `json:"aqi"`
	PM10 Metric `json:"pm10"`
	PM25 Metric `json:"pm2_5"`
}

// CurrentConditions is the display-ready view of the current weather.
type CurrentConditions struct {
	City            string     `json:"city"`
	Country         string     `json:"country"`
	Admin1          string     `json:"admin1,omitempty"`
	Temperature     int        `json:"temperature"`
	FeelsLike       int        `json:"feels_like"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon"`
	Humidity        int        `json:"humidity"`
	Pressure        int        `json:"pressure"`
	WindSpeed       float64    `json:"wind_speed"`
	WindDirection   int        `json:"wind_direction"`
	Precipitation   float64    `json:"precipitation"`
	CloudCover      int        `json:"cloud_cover"`
	VisibilityKM    Metric     `json:"visibility_km"`
	UVIndex         Metric     `json:"uv_index"`
	UVLevel         string     `json:"uv_level"`
	Sunrise         string     `json:"sunrise"`
	Sunset          string     `json:"sunset"`
	AirQuality      AirQuality `json:"air_quality"`
	Unit            UnitSystem `json:"unit"`
	TemperatureUnit string     `json:"temperature_unit"`
	WindSpeedUnit   string     `json:"wind_speed_unit"`
}

// HourlyPoint is one entry of the 24-hour series.
type HourlyPoint struct {
	Time              string  `json:"time"`
	Temperature       int     `json:"temperature"`
	Icon              string  `json:"icon"`
	PrecipProbability int     `json:"precipitation_probability"`
	Precipitation     float64 `json:"precipitation"`
	WindSpeed         float64 `json:"wind_speed"`
}

// DailyPoint is one entry of the 5-day forecast series.
type DailyPoint struct {
	Date                 string  `json:"date"`
	TemperatureMax       int     `json:"temperature_max"`
	TemperatureMin       int     `json:"temperature_min"`
	Description          string  `json:"description"`
	Icon                 string  `json:"icon"`
	PrecipitationSum     float64 `json:"precipitation_sum"`
	PrecipProbabilityMax int     `json:"precipitation_probability_max"`
	WindSpeedMax         float64 `json:"wind_speed_max"`
	UVIndexMax           Metric  `json:"uv_index_max"`
}

// Report is the assembled response payload for one weather lookup.
type Report struct {
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyPoint     `json:"hourly"`
	Forecast []DailyPoint      `json:"forecast"`
}
