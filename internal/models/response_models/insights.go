package response_models

type InsightReport struct {
	OverallScore     int      `json:"overallScore"`
	Badge            string   `json:"badge"`
	Axes             []Axis   `json:"axes"`
	Alerts           []string `json:"alerts"`
	SuggestedActions []string `json:"suggestedActions"`
	GeneratedAt      string   `json:"generatedAt"`
}

type Axis struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Score       int    `json:"score"`
	Status      string `json:"status"`
	Explanation string `json:"explanation"`
}
