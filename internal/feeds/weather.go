package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// open-meteo is keyless: a geocoding lookup resolves the place name, then
// the forecast endpoint returns current conditions plus daily highs/lows.

var weatherCodes = map[int]string{
	0:  "Clear",
	1:  "Mostly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime fog",
	51: "Light drizzle",
	53: "Drizzle",
	55: "Heavy drizzle",
	61: "Light rain",
	63: "Rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	80: "Rain showers",
	81: "Rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with heavy hail",
}

func describeWeather(code int) string {
	if s, ok := weatherCodes[code]; ok {
		return s
	}
	return fmt.Sprintf("Code %d", code)
}

// GetWeather returns current conditions and a short forecast for a place.
func (c *Client) GetWeather(ctx context.Context, location string, days int) json.RawMessage {
	if days <= 0 || days > 7 {
		days = 3
	}

	var geo struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	geoURL := fmt.Sprintf("%s/search?name=%s&count=1", c.geocodeURL, url.QueryEscape(location))
	if err := c.getJSON(ctx, geoURL, nil, &geo); err != nil {
		return failure("weather", "open_meteo", err.Error())
	}
	if len(geo.Results) == 0 {
		return failure("weather", "open_meteo", fmt.Sprintf("location not found: %s", location))
	}
	place := geo.Results[0]

	var fc struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	fcURL := fmt.Sprintf(
		"%s/forecast?latitude=%.4f&longitude=%.4f&current=temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code&daily=weather_code,temperature_2m_max,temperature_2m_min&forecast_days=%d&timezone=auto",
		c.meteoURL, place.Latitude, place.Longitude, days)
	if err := c.getJSON(ctx, fcURL, nil, &fc); err != nil {
		return failure("weather", "open_meteo", err.Error())
	}

	forecast := make([]map[string]any, 0, len(fc.Daily.Time))
	for i, day := range fc.Daily.Time {
		entry := map[string]any{"day": weekdayName(day)}
		if i < len(fc.Daily.WeatherCode) {
			entry["conditions"] = describeWeather(fc.Daily.WeatherCode[i])
		}
		if i < len(fc.Daily.TempMax) {
			entry["high_c"] = fc.Daily.TempMax[i]
		}
		if i < len(fc.Daily.TempMin) {
			entry["low_c"] = fc.Daily.TempMin[i]
		}
		forecast = append(forecast, entry)
	}

	locName := place.Name
	if place.Country != "" {
		locName += ", " + place.Country
	}
	return structured("weather", "open_meteo", map[string]any{
		"location": locName,
		"current": map[string]any{
			"conditions":   describeWeather(fc.Current.WeatherCode),
			"temp_c":       fc.Current.Temperature,
			"feels_like_c": fc.Current.FeelsLike,
			"humidity":     fc.Current.Humidity,
			"wind":         fmt.Sprintf("%.0f km/h", fc.Current.WindSpeed),
		},
		"forecast": forecast,
	})
}

func weekdayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 2")
}
