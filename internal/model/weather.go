package model

// WeatherSnapshot is the live weather reading for a (state, city) pair.
// Field names follow the backend response body.
type WeatherSnapshot struct {
	AvgTemp     float64 `json:"avg_temp"`
	MaxTemp     float64 `json:"max_temp"`
	MinTemp     float64 `json:"min_temp"`
	Rainfall    float64 `json:"rainfall"`
	CloudCover  float64 `json:"cloud_cover"`
	PH          float64 `json:"ph"`
	VapPressure float64 `json:"vap_pressure"`
}

// Location identifies the (state, city) pair a weather snapshot belongs to.
type Location struct {
	State string `json:"state"`
	City  string `json:"city"`
}
