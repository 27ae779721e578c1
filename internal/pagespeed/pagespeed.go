// Package pagespeed adapts the PageSpeed Insights v5 API into flat
// per-strategy score/metric/opportunity reports.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const (
	defaultEndpoint  = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	requestTimeout   = 30 * time.Second
	maxOpportunities = 5
)

// Client calls the PageSpeed Insights API for both strategies.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a PageSpeed client. An empty API key is allowed; every
// report then carries the unconfigured error without touching the network.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Report fetches desktop and mobile results for pageURL. The two strategy
// calls are independent: a failure on one is recorded in that strategy's
// result and does not abort the other. Report never returns an error;
// failures are embedded in the returned value.
func (c *Client) Report(ctx context.Context, pageURL string) *Report {
	if c.apiKey == "" {
		return &Report{Error: "PageSpeed Insights API key not configured"}
	}

	report := &Report{}
	report.Desktop = c.fetchStrategy(ctx, pageURL, "desktop")
	report.Mobile = c.fetchStrategy(ctx, pageURL, "mobile")
	return report
}

func (c *Client) fetchStrategy(ctx context.Context, pageURL, strategy string) *StrategyResult {
	query := url.Values{}
	query.Set("url", pageURL)
	query.Set("key", c.apiKey)
	query.Set("strategy", strategy)
	query.Add("category", "PERFORMANCE")
	query.Add("category", "ACCESSIBILITY")
	query.Add("category", "BEST_PRACTICES")
	query.Add("category", "SEO")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return &StrategyResult{Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &StrategyResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StrategyResult{Error: fmt.Sprintf("PageSpeed API returned HTTP %d", resp.StatusCode)}
	}

	var payload psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &StrategyResult{Error: fmt.Sprintf("failed to parse PageSpeed data: %v", err)}
	}

	return parseStrategy(&payload)
}

// parseStrategy flattens a lighthouse result into scores, the six named
// metrics and the improvement opportunities. Opportunities are sorted by
// score ascending (title as tie-break) before the cap so the selection is
// deterministic; the upstream audit collection has no stable order.
func parseStrategy(payload *psiResponse) *StrategyResult {
	lighthouse := payload.LighthouseResult

	result := &StrategyResult{
		Scores: &Scores{
			Performance:   categoryScore(lighthouse.Categories, "performance"),
			Accessibility: categoryScore(lighthouse.Categories, "accessibility"),
			BestPractices: categoryScore(lighthouse.Categories, "best-practices"),
			SEO:           categoryScore(lighthouse.Categories, "seo"),
		},
		Opportunities: []Opportunity{},
	}

	if metricsAudit, ok := lighthouse.Audits["metrics"]; ok && len(metricsAudit.Details.Items) > 0 {
		items := metricsAudit.Details.Items[0]
		result.Metrics = &Metrics{
			FirstContentfulPaint:   numberField(items, "firstContentfulPaint"),
			SpeedIndex:             numberField(items, "speedIndex"),
			LargestContentfulPaint: numberField(items, "largestContentfulPaint"),
			TimeToInteractive:      numberField(items, "interactive"),
			TotalBlockingTime:      numberField(items, "totalBlockingTime"),
			CumulativeLayoutShift:  numberField(items, "cumulativeLayoutShift"),
		}
	}

	for _, audit := range lighthouse.Audits {
		if audit.Score == nil || *audit.Score >= 1 {
			continue
		}
		if audit.Details.Type != "opportunity" {
			continue
		}
		result.Opportunities = append(result.Opportunities, Opportunity{
			Title:       audit.Title,
			Description: audit.Description,
			Score:       roundScore(*audit.Score),
		})
	}

	sort.Slice(result.Opportunities, func(i, j int) bool {
		if result.Opportunities[i].Score != result.Opportunities[j].Score {
			return result.Opportunities[i].Score < result.Opportunities[j].Score
		}
		return result.Opportunities[i].Title < result.Opportunities[j].Title
	})
	if len(result.Opportunities) > maxOpportunities {
		result.Opportunities = result.Opportunities[:maxOpportunities]
	}

	return result
}

func categoryScore(categories map[string]psiCategory, name string) int {
	category, ok := categories[name]
	if !ok || category.Score == nil {
		return 0
	}
	return roundScore(*category.Score)
}

func roundScore(score float64) int {
	return int(math.Round(score * 100))
}

func numberField(items map[string]any, key string) float64 {
	if value, ok := items[key].(float64); ok {
		return value
	}
	return 0
}
