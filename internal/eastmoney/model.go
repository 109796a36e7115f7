package eastmoney

// historyResponse is the raw shape of the fund history API.
type historyResponse struct {
	Data      historyData `json:"Data"`
	ErrCode   int         `json:"ErrCode"`
	ErrMsg    string      `json:"ErrMsg"`
	TotalCount int        `json:"TotalCount"`
}

type historyData struct {
	LSJZList []historyItem `json:"LSJZList"`
}

// historyItem is one day's NAV row. All numeric fields arrive as strings;
// the growth rate may be empty on non-trading or dividend days.
type historyItem struct {
	Date            string `json:"FSRQ"`
	UnitNAV         string `json:"DWJZ"`
	CumulativeNAV   string `json:"LJJZ"`
	DailyGrowthRate string `json:"JZZZL"`
}

// estimateResponse is the JSON payload inside the jsonpgz(...) wrapper of
// the real-time estimate feed.
type estimateResponse struct {
	Code            string `json:"fundcode"`
	Name            string `json:"name"`
	LastNAVDate     string `json:"jzrq"`
	LastNAV         string `json:"dwjz"`
	EstimatedNAV    string `json:"gsz"`
	EstimatedChange string `json:"gszzl"` // percent
	EstimationTime  string `json:"gztime"`
}
