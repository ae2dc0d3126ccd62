package weather

import (
	"strings"
	"time"

	"github.com/akarpova/weatherview/internal/common"
)

const (
	hourlyCount        = 24
	dailyCount         = 5
	providerDateLayout = "2006-01-02"
)

// Shape turns the raw provider payloads into the display-ready report.
// It performs no I/O. Optional measurements missing from the payload become
// "unavailable" sentinels; only an absent required series is an error.
func Shape(loc Location, bundle *Bundle, unit UnitSystem) (*Report, error) {
	fc := &bundle.Forecast

	if len(fc.Hourly.Time) == 0 {
		return nil, &SchemaError{Field: "hourly time series"}
	}
	if len(fc.Daily.Time) == 0 {
		return nil, &SchemaError{Field: "daily time series"}
	}

	cur := fc.Current
	isDay := cur.IsDay == 1

	current := CurrentConditions{
		City:            loc.Name,
		Country:         loc.Country,
		Admin1:          loc.Admin1,
		Temperature:     common.RoundInt(cur.Temperature),
		FeelsLike:       common.RoundInt(cur.FeelsLike),
		Description:     Describe(cur.WeatherCode),
		Icon:            Icon(cur.WeatherCode, isDay),
		Humidity:        common.RoundInt(cur.Humidity),
		Pressure:        common.RoundInt(cur.Pressure),
		WindSpeed:       common.Round1(cur.WindSpeed),
		WindDirection:   common.RoundInt(cur.WindDirection),
		Precipitation:   cur.Precipitation,
		CloudCover:      common.RoundInt(cur.CloudCover),
		VisibilityKM:    Unavailable(),
		UVIndex:         Unavailable(),
		UVLevel:         "unavailable",
		Sunrise:         timeOfDay(first(fc.Daily.Sunrise)),
		Sunset:          timeOfDay(first(fc.Daily.Sunset)),
		AirQuality:      shapeAirQuality(bundle.AirQuality),
		Unit:            unit,
		TemperatureUnit: unit.TemperatureUnit(),
		WindSpeedUnit:   unit.WindSpeedUnit(),
	}

	// A reported zero is a valid measurement; only an absent field degrades.
	if cur.Visibility != nil {
		current.VisibilityKM = Available(common.Round1(*cur.Visibility / 1000))
	}
	if cur.UVIndex != nil {
		current.UVIndex = Available(*cur.UVIndex)
		current.UVLevel = UVLevel(*cur.UVIndex)
	}

	report := &Report{
		Current:  current,
		Hourly:   shapeHourly(fc),
		Forecast: shapeDaily(fc),
	}

	return report, nil
}

func shapeHourly(fc *ForecastPayload) []HourlyPoint {
	n := len(fc.Hourly.Time)
	if n > hourlyCount {
		n = hourlyCount
	}

	points := make([]HourlyPoint, 0, n)
	for i := 0; i < n; i++ {
		code := intAt(fc.Hourly.WeatherCode, i)
		points = append(points, HourlyPoint{
			Time:              timeOfDay(fc.Hourly.Time[i]),
			Temperature:       common.RoundInt(floatAt(fc.Hourly.Temperature, i)),
			Icon:              Icon(code, intAt(fc.Hourly.IsDay, i) == 1),
			PrecipProbability: intAt(fc.Hourly.PrecipProbability, i),
			Precipitation:     floatAt(fc.Hourly.Precipitation, i),
			WindSpeed:         common.Round1(floatAt(fc.Hourly.WindSpeed, i)),
		})
	}
	return points
}

// shapeDaily takes daily indices 1 through 5: index 0 is today, which the
// current conditions block already covers.
func shapeDaily(fc *ForecastPayload) []DailyPoint {
	points := make([]DailyPoint, 0, dailyCount)
	for i := 1; i <= dailyCount && i < len(fc.Daily.Time); i++ {
		code := intAt(fc.Daily.WeatherCode, i)

		uvMax := Unavailable()
		if i < len(fc.Daily.UVIndexMax) && fc.Daily.UVIndexMax[i] != nil {
			uvMax = Available(*fc.Daily.UVIndexMax[i])
		}

		points = append(points, DailyPoint{
			Date:                 formatDate(fc.Daily.Time[i]),
			TemperatureMax:       common.RoundInt(floatAt(fc.Daily.TemperatureMax, i)),
			TemperatureMin:       common.RoundInt(floatAt(fc.Daily.TemperatureMin, i)),
			Description:          Describe(code),
			Icon:                 Icon(code, true),
			PrecipitationSum:     floatAt(fc.Daily.PrecipitationSum, i),
			PrecipProbabilityMax: intAt(fc.Daily.PrecipProbabilityMax, i),
			WindSpeedMax:         common.Round1(floatAt(fc.Daily.WindSpeedMax, i)),
			UVIndexMax:           uvMax,
		})
	}
	return points
}

func shapeAirQuality(air *AirQualityPayload) AirQuality {
	aq := AirQuality{AQI: Unavailable(), PM10: Unavailable(), PM25: Unavailable()}
	if air == nil {
		return aq
	}
	if air.Current.USAQI != nil {
		aq.AQI = Available(*air.Current.USAQI)
	}
	if air.Current.PM10 != nil {
		aq.PM10 = Available(*air.Current.PM10)
	}
	if air.Current.PM25 != nil {
		aq.PM25 = Available(*air.Current.PM25)
	}
	return aq
}

// timeOfDay extracts the HH:MM part of a provider ISO timestamp such as
// "2024-06-01T05:12".
func timeOfDay(iso string) string {
	idx := strings.IndexByte(iso, 'T')
	if idx < 0 || len(iso) < idx+6 {
		return "unavailable"
	}
	return iso[idx+1 : idx+6]
}

// formatDate renders a provider calendar date as e.g. "Monday, June 3".
func formatDate(date string) string {
	t, err := time.Parse(providerDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2")
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

func floatAt(list []float64, i int) float64 {
	if i < 0 || i >= len(list) {
		return 0
	}
	return list[i]
}

func intAt(list []int, i int) int {
	if i < 0 || i >= len(list) {
		return 0
	}
	return list[i]
}
