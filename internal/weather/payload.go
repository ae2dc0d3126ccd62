package weather

// ForecastPayload mirrors the provider's combined current+hourly+daily
// forecast response. Optional measurements are pointers so that an absent
// field can be told apart from a reported zero.
type ForecastPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time          string   `json:"time"`
		Temperature   float64  `json:"temperature_2m"`
		Humidity      float64  `json:"relative_humidity_2m"`
		FeelsLike     float64  `json:"apparent_temperature"`
		IsDay         int      `json:"is_day"`
		Precipitation float64  `json:"precipitation"`
		WeatherCode   int      `json:"weather_code"`
		CloudCover    float64  `json:"cloud_cover"`
		Pressure      float64  `json:"surface_pressure"`
		WindSpeed     float64  `json:"wind_speed_10m"`
		WindDirection float64  `json:"wind_direction_10m"`
		Visibility    *float64 `json:"visibility"`
		UVIndex       *float64 `json:"uv_index"`
	} `json:"current"`
	Hourly struct {
		Time              []string  `json:"time"`
		Temperature       []float64 `json:"temperature_2m"`
		WeatherCode       []int     `json:"weather_code"`
		IsDay             []int     `json:"is_day"`
		PrecipProbability []int     `json:"precipitation_probability"`
		Precipitation     []float64 `json:"precipitation"`
		WindSpeed         []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
	Daily struct {
		Time                 []string   `json:"time"`
		WeatherCode          []int      `json:"weather_code"`
		TemperatureMax       []float64  `json:"temperature_2m_max"`
		TemperatureMin       []float64  `json:"temperature_2m_min"`
		Sunrise              []string   `json:"sunrise"`
		Sunset               []string   `json:"sunset"`
		PrecipitationSum     []float64  `json:"precipitation_sum"`
		PrecipProbabilityMax []int      `json:"precipitation_probability_max"`
		WindSpeedMax         []float64  `json:"wind_speed_10m_max"`
		UVIndexMax           []*float64 `json:"uv_index_max"`
	} `json:"daily"`
}

// AirQualityPayload mirrors the provider's current air quality response.
type AirQualityPayload struct {
	Current struct {
		USAQI *float64 `json:"us_aqi"`
		PM10  *float64 `json:"pm10"`
		PM25  *float64 `json:"pm2_5"`
	} `json:"current"`
}

// Bundle is the raw upstream data produced by one fetch. AirQuality is nil
// when the best-effort air quality call failed.
type Bundle struct {
	Forecast   ForecastPayload
	AirQuality *AirQualityPayload
}
