package pagespeed

// Report holds the per-strategy results. A top-level Error means neither
// strategy was attempted (missing API key).
type Report struct {
	Desktop *StrategyResult `json:"desktop"`
	Mobile  *StrategyResult `json:"mobile"`
	Error   string          `json:"error,omitempty"`
}

// StrategyResult is the flattened lighthouse result for one strategy, or
// an error message when that strategy's call failed.
type StrategyResult struct {
	Scores        *Scores       `json:"scores,omitempty"`
	Metrics       *Metrics      `json:"metrics,omitempty"`
	Opportunities []Opportunity `json:"opportunities,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// Scores are the four lighthouse category scores scaled to 0-100.
type Scores struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"best_practices"`
	SEO           int `json:"seo"`
}

// Metrics are the six timing and stability measurements.
type Metrics struct {
	FirstContentfulPaint   float64 `json:"first_contentful_paint"`
	SpeedIndex             float64 `json:"speed_index"`
	LargestContentfulPaint float64 `json:"largest_contentful_paint"`
	TimeToInteractive      float64 `json:"time_to_interactive"`
	TotalBlockingTime      float64 `json:"total_blocking_time"`
	CumulativeLayoutShift  float64 `json:"cumulative_layout_shift"`
}

// Opportunity is an improvement suggestion sourced from a failing audit.
type Opportunity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// psiResponse mirrors the subset of the PageSpeed Insights response used here.
type psiResponse struct {
	LighthouseResult struct {
		Categories map[string]psiCategory `json:"categories"`
		Audits     map[string]psiAudit    `json:"audits"`
	} `json:"lighthouseResult"`
}

type psiCategory struct {
	Score *float64 `json:"score"`
}

type psiAudit struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Score       *float64 `json:"score"`
	Details     struct {
		Type  string           `json:"type"`
		Items []map[string]any `json:"items"`
	} `json:"details"`
}
