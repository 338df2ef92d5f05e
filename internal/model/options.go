package model

// Options holds the backend-supplied enumerations of valid form values for
// the dashboard selectors.
type Options struct {
	States            []string `json:"states"`
	Cities            []string `json:"cities"`
	Seasons           []string `json:"seasons"`
	SoilTypes         []string `json:"soil_types"`
	WaterAvailability []string `json:"water_availability"`
}

// HasCity reports whether city is one of the valid city values.
func (o *Options) HasCity(city string) bool {
	return contains(o.Cities, city)
}

// HasSeason reports whether season is one of the valid season values.
func (o *Options) HasSeason(season string) bool {
	return contains(o.Seasons, season)
}

// HasSoilType reports whether soil is one of the valid soil type values.
func (o *Options) HasSoilType(soil string) bool {
	return contains(o.SoilTypes, soil)
}

// HasWaterAvailability reports whether water is one of the valid water
// availability values.
func (o *Options) HasWaterAvailability(water string) bool {
	return contains(o.WaterAvailability, water)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
