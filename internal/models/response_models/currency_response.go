package response_models

type RateResponse struct {
	Currency string  `json:"currency"`
	Base     string  `json:"base"`
	Rate     float64 `json:"rate"` // base units per one unit of Currency
}

type RateTableResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt int64              `json:"fetched_at"`
	Source    string             `json:"source"` // live, cache, fallback
}
