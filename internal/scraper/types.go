package scraper

import "github.com/sitescope/backend/internal/pagespeed"

// Sentinel values returned when a field has no usable source in the page.
const (
	NoTitle       = "No title found"
	NoDescription = "No description found"
	NoKeywords    = "No keywords found"
	NoContent     = "No content found"
	NoLanguage    = "Not specified"
	NoAltText     = "No alt text"
)

// Caps applied to extracted collections.
const (
	maxLinks          = 50
	maxImages         = 20
	maxContentPreview = 1000
)

// Image is a single page image with its resolved source URL.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// PageRecord holds everything extracted from a single scrape.
type PageRecord struct {
	URL                string              `json:"url"`
	StatusCode         int                 `json:"status_code"`
	MetaTitle          string              `json:"meta_title"`
	MetaDescription    string              `json:"meta_description"`
	MetaKeywords       string              `json:"meta_keywords"`
	OGImage            *string             `json:"og_image"`
	Content            string              `json:"content"`
	Headings           map[string][]string `json:"headings"`
	InternalLinks      []string            `json:"internal_links"`
	InternalLinksCount int                 `json:"internal_links_count"`
	ExternalLinks      []string            `json:"external_links"`
	ExternalLinksCount int                 `json:"external_links_count"`
	Images             []Image             `json:"images"`
	ImagesCount        int                 `json:"images_count"`
	Language           string              `json:"language"`
	CanonicalURL       *string             `json:"canonical_url"`
	ContentLength      int                 `json:"content_length"`
	PagespeedInsights  *pagespeed.Report   `json:"pagespeed_insights"`
}
