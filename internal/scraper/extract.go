package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaTitle resolves the page title by priority: <title>, og:title, twitter:title.
func metaTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if content := metaContent(doc, `meta[property="og:title"]`); content != "" {
		return content
	}
	if content := metaContent(doc, `meta[name="twitter:title"]`); content != "" {
		return content
	}
	return NoTitle
}

// metaDescription resolves the description by priority: meta description,
// og:description, twitter:description.
func metaDescription(doc *goquery.Document) string {
	if content := metaContent(doc, `meta[name="description"]`); content != "" {
		return content
	}
	if content := metaContent(doc, `meta[property="og:description"]`); content != "" {
		return content
	}
	if content := metaContent(doc, `meta[name="twitter:description"]`); content != "" {
		return content
	}
	return NoDescription
}

func metaKeywords(doc *goquery.Document) string {
	if content := metaContent(doc, `meta[name="keywords"]`); content != "" {
		return content
	}
	return NoKeywords
}

func ogImage(doc *goquery.Document) *string {
	if content := metaContent(doc, `meta[property="og:image"]`); content != "" {
		return &content
	}
	return nil
}

// metaContent returns the trimmed content attribute of the first element
// matching the selector, or "" when absent.
func metaContent(doc *goquery.Document, selector string) string {
	content, exists := doc.Find(selector).First().Attr("content")
	if !exists {
		return ""
	}
	return strings.TrimSpace(content)
}

// contentPreview extracts the visible text of the page with script, style
// and noscript subtrees removed, collapses whitespace and truncates to
// maxContentPreview characters. The document is cloned so extraction does
// not disturb other field lookups.
func contentPreview(doc *goquery.Document) string {
	clone := goquery.CloneDocument(doc)
	clone.Find("script, style, noscript").Remove()

	text := strings.Join(strings.Fields(clone.Text()), " ")
	if text == "" {
		return NoContent
	}

	runes := []rune(text)
	if len(runes) > maxContentPreview {
		return string(runes[:maxContentPreview]) + "..."
	}
	return text
}

// headings collects non-empty heading texts per level h1..h6, preserving
// document order within a level. Levels without headings are omitted.
func headings(doc *goquery.Document) map[string][]string {
	result := make(map[string][]string)
	for i := 1; i <= 6; i++ {
		tag := fmt.Sprintf("h%d", i)
		var texts []string
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		if len(texts) > 0 {
			result[tag] = texts
		}
	}
	return result
}

func language(doc *goquery.Document) string {
	if lang, exists := doc.Find("html").First().Attr("lang"); exists && strings.TrimSpace(lang) != "" {
		return strings.TrimSpace(lang)
	}
	return NoLanguage
}

func canonicalURL(doc *goquery.Document) *string {
	if href, exists := doc.Find(`link[rel="canonical"]`).First().Attr("href"); exists {
		if href = strings.TrimSpace(href); href != "" {
			return &href
		}
	}
	return nil
}
