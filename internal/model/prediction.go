package model

// FarmQuery is the set of farm parameters submitted for a crop prediction.
// Area is in acres and must be positive.
type FarmQuery struct {
	State             string  `json:"state"`
	City              string  `json:"city"`
	Season            string  `json:"season"`
	SoilType          string  `json:"soil_type"`
	WaterAvailability string  `json:"water_availability"`
	Area              float64 `json:"area"`
}

// CropRecommendation is one backend-computed crop suggestion. The backend
// returns recommendations pre-sorted by suitability descending; order is
// rank-significant and never re-sorted here.
type CropRecommendation struct {
	Crop               string  `json:"crop"`
	Suitability        float64 `json:"suitability"`
	ProfitPerAcre      float64 `json:"profit_per_acre"`
	TotalProfit        float64 `json:"total_profit"`
	ExpectedProduction float64 `json:"expected_production"`
	TotalProduction    float64 `json:"total_production,omitempty"`
	AvgPrice           float64 `json:"avg_price"`
}
