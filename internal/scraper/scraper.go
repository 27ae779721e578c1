package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitescope/backend/internal/pagespeed"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Service performs one-shot page scrapes and attaches performance reports.
type Service struct {
	client    *http.Client
	pagespeed *pagespeed.Client
}

// NewService creates a scraper service. The pagespeed client may report
// itself unconfigured; scrapes still succeed with an error-bearing report.
func NewService(ps *pagespeed.Client) *Service {
	return &Service{
		client: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		pagespeed: ps,
	}
}

// Scrape fetches the page at address and extracts all SEO-relevant fields.
func (s *Service) Scrape(ctx context.Context, address string) (*PageRecord, error) {
	base, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("error fetching URL: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	record := extract(doc, base, address)
	record.StatusCode = resp.StatusCode
	record.ContentLength = len(body)
	record.PagespeedInsights = s.pagespeed.Report(ctx, address)

	return record, nil
}

// extract builds a PageRecord from a parsed document. Pure transformation,
// no network.
func extract(doc *goquery.Document, base *url.URL, sourceURL string) *PageRecord {
	internal, external := classifyLinks(doc, base, sourceURL)
	images := extractImages(doc, base)

	return &PageRecord{
		URL:                sourceURL,
		MetaTitle:          metaTitle(doc),
		MetaDescription:    metaDescription(doc),
		MetaKeywords:       metaKeywords(doc),
		OGImage:            ogImage(doc),
		Content:            contentPreview(doc),
		Headings:           headings(doc),
		InternalLinks:      internal,
		InternalLinksCount: len(internal),
		ExternalLinks:      external,
		ExternalLinksCount: len(external),
		Images:             images,
		ImagesCount:        len(images),
		Language:           language(doc),
		CanonicalURL:       canonicalURL(doc),
	}
}
