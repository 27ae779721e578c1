package scraper

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	base, err := url.Parse(raw)
	require.NoError(t, err)
	return base
}

func TestClassifyLinksScenario(t *testing.T) {
	source := "https://x.com/"
	doc := mustDoc(t, `<html><body>
		<a href="/a">rel</a>
		<a href="https://x.com/a?x=1">same with query</a>
		<a href="https://other.com/b">other</a>
		<a href="/">self</a>
	</body></html>`)

	internal, external := classifyLinks(doc, mustBase(t, source), source)

	assert.Equal(t, []string{"https://x.com/a"}, internal)
	assert.Equal(t, []string{"https://other.com/b"}, external)
}

func TestClassifyLinksStripsFragmentsAndQueries(t *testing.T) {
	source := "https://x.com/page"
	doc := mustDoc(t, `<html><body>
		<a href="/docs?page=2#section">q and frag</a>
		<a href="/docs">plain</a>
		<a href="https://other.com/c?keep=1#frag">external keeps query</a>
	</body></html>`)

	internal, external := classifyLinks(doc, mustBase(t, source), source)

	assert.Equal(t, []string{"https://x.com/docs"}, internal)
	assert.Equal(t, []string{"https://other.com/c?keep=1#frag"}, external)
}

func TestClassifyLinksDisjointAndCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 60; i++ {
		sb.WriteString(fmt.Sprintf(`<a href="/page-%02d">p</a>`, i))
		sb.WriteString(fmt.Sprintf(`<a href="https://other.com/page-%02d">e</a>`, i))
	}
	sb.WriteString("</body></html>")

	source := "https://x.com/"
	internal, external := classifyLinks(mustDoc(t, sb.String()), mustBase(t, source), source)

	assert.Len(t, internal, maxLinks)
	assert.Len(t, external, maxLinks)
	assert.True(t, sort.StringsAreSorted(internal))
	assert.True(t, sort.StringsAreSorted(external))

	seen := make(map[string]struct{}, len(internal))
	for _, link := range internal {
		seen[link] = struct{}{}
	}
	for _, link := range external {
		_, overlap := seen[link]
		assert.False(t, overlap, "link %s in both sets", link)
	}
}

func TestExtractImages(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<img src="/logo.png" alt="Logo">
		<img src="https://cdn.x.com/pic.jpg">
		<img alt="no src">
	</body></html>`)

	images := extractImages(doc, mustBase(t, "https://x.com/page"))

	require.Len(t, images, 2)
	assert.Equal(t, Image{Src: "https://x.com/logo.png", Alt: "Logo"}, images[0])
	assert.Equal(t, Image{Src: "https://cdn.x.com/pic.jpg", Alt: NoAltText}, images[1])
}

func TestExtractImagesCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		sb.WriteString(fmt.Sprintf(`<img src="/img-%02d.png">`, i))
	}
	sb.WriteString("</body></html>")

	images := extractImages(mustDoc(t, sb.String()), mustBase(t, "https://x.com/"))

	require.Len(t, images, maxImages)
	// document order, not sorted
	assert.Equal(t, "https://x.com/img-00.png", images[0].Src)
	assert.Equal(t, "https://x.com/img-19.png", images[19].Src)
}
