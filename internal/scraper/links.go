package scraper

import (
	"net/url"
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// classifyLinks partitions every a[href] in the document into internal and
// external links. Internal links share the source host (relative hrefs
// included) and are normalized by dropping query and fragment; the source
// URL itself is excluded. External links keep their full resolved form.
// Both sets are deduplicated, sorted and capped at maxLinks.
func classifyLinks(doc *goquery.Document, base *url.URL, sourceURL string) (internal, external []string) {
	internalSet := make(map[string]struct{})
	externalSet := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(linkURL)

		if resolved.Host == base.Host {
			clean := resolved.Scheme + "://" + resolved.Host + resolved.Path
			if clean != sourceURL {
				internalSet[clean] = struct{}{}
			}
		} else if resolved.Host != "" {
			externalSet[resolved.String()] = struct{}{}
		}
	})

	return sortAndCap(internalSet), sortAndCap(externalSet)
}

// extractImages resolves every img[src] against the base URL, keeping the
// first maxImages in document order. A missing alt attribute becomes the
// NoAltText sentinel.
func extractImages(doc *goquery.Document, base *url.URL) []Image {
	images := make([]Image, 0, maxImages)
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, exists := sel.Attr("src")
		if !exists || src == "" {
			return true
		}
		srcURL, err := url.Parse(src)
		if err != nil {
			return true
		}
		images = append(images, Image{
			Src: base.ResolveReference(srcURL).String(),
			Alt: sel.AttrOr("alt", NoAltText),
		})
		return len(images) < maxImages
	})
	return images
}

func sortAndCap(set map[string]struct{}) []string {
	links := make([]string, 0, len(set))
	for link := range set {
		links = append(links, link)
	}
	sort.Strings(links)
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}
