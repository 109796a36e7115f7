package request

type CreatePositionRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Shares         float64 `json:"shares"`
	AverageCost    float64 `json:"averageCost"`
	RealizedProfit float64 `json:"realizedProfit"`
	Tags           string  `json:"tags"`
}

type UpdatePositionRequest struct {
	Code           *string  `json:"code,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Shares         *float64 `json:"shares,omitempty"`
	AverageCost    *float64 `json:"averageCost,omitempty"`
	RealizedProfit *float64 `json:"realizedProfit,omitempty"`
	Tags           *string  `json:"tags,omitempty"`
}
