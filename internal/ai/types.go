package ai

// TitleSuggestion is one proposed meta title.
type TitleSuggestion struct {
	Title  string `json:"title"`
	Length int    `json:"length"`
	Reason string `json:"reason"`
}

// DescriptionSuggestion is one proposed meta description.
type DescriptionSuggestion struct {
	Description string `json:"description"`
	Length      int    `json:"length"`
	Reason      string `json:"reason"`
}

// KeywordSet groups keyword suggestions by strategic role.
type KeywordSet struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	LongTail  []string `json:"long_tail"`
	LSI       []string `json:"lsi"`
}

// Improvements holds content improvement recommendations per area.
type Improvements struct {
	Structure   []string `json:"structure"`
	Keywords    []string `json:"keywords"`
	Readability []string `json:"readability"`
	SEO         []string `json:"seo"`
	CTA         []string `json:"cta"`
}

// HeadingIdeas holds suggested replacement headings per level.
type HeadingIdeas struct {
	H1              []string `json:"h1"`
	H2              []string `json:"h2"`
	H3              []string `json:"h3"`
	Recommendations []string `json:"recommendations"`
}

// Analysis is the comprehensive SEO audit result.
type Analysis struct {
	Score          int      `json:"score"`
	CriticalIssues []string `json:"critical_issues"`
	QuickWins      []string `json:"quick_wins"`
	Strategy       []string `json:"strategy"`
	Technical      []string `json:"technical"`
	ContentQuality string   `json:"content_quality"`
}

// ChatMessage is a single prior conversation turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the conversational answer plus the reworded question
// derived as a secondary artifact.
type ChatResult struct {
	Answer            string `json:"answer"`
	OptimizedQuestion string `json:"optimized_question"`
	OriginalQuestion  string `json:"original_question"`
}

// PageData is the scraped-page summary the AI operations reason about.
// It mirrors the wire shape produced by the scraper.
type PageData struct {
	URL                string              `json:"url"`
	MetaTitle          string              `json:"meta_title"`
	MetaDescription    string              `json:"meta_description"`
	MetaKeywords       string              `json:"meta_keywords"`
	Content            string              `json:"content"`
	ContentLength      int                 `json:"content_length"`
	Language           string              `json:"language"`
	Headings           map[string][]string `json:"headings"`
	InternalLinksCount int                 `json:"internal_links_count"`
	ExternalLinksCount int                 `json:"external_links_count"`
	ImagesCount        int                 `json:"images_count"`
}
