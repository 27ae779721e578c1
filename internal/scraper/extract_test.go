package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestMetaTitlePriority(t *testing.T) {
	testCases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag wins",
			html: `<html><head><title>Foo</title><meta property="og:title" content="OG"></head></html>`,
			want: "Foo",
		},
		{
			name: "og title fallback",
			html: `<html><head><meta property="og:title" content="OG Title"></head></html>`,
			want: "OG Title",
		},
		{
			name: "twitter title fallback",
			html: `<html><head><meta name="twitter:title" content="Tweet Title"></head></html>`,
			want: "Tweet Title",
		},
		{
			name: "empty title falls through",
			html: `<html><head><title>   </title><meta property="og:title" content="OG Title"></head></html>`,
			want: "OG Title",
		},
		{
			name: "no source at all",
			html: `<html><head></head><body><p>hi</p></body></html>`,
			want: NoTitle,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metaTitle(mustDoc(t, tc.html)))
		})
	}
}

func TestMetaDescriptionPriority(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="From OG">
		<meta name="twitter:description" content="From Twitter">
	</head></html>`
	assert.Equal(t, "From OG", metaDescription(mustDoc(t, html)))

	html = `<html><head><meta name="description" content="Standard"><meta property="og:description" content="From OG"></head></html>`
	assert.Equal(t, "Standard", metaDescription(mustDoc(t, html)))

	assert.Equal(t, NoDescription, metaDescription(mustDoc(t, `<html></html>`)))
}

func TestScenarioTitleDescriptionKeywords(t *testing.T) {
	doc := mustDoc(t, `<title>Foo</title><meta name="description" content="Bar">`)

	assert.Equal(t, "Foo", metaTitle(doc))
	assert.Equal(t, "Bar", metaDescription(doc))
	assert.Equal(t, NoKeywords, metaKeywords(doc))
}

func TestContentPreview(t *testing.T) {
	t.Run("strips scripts and collapses whitespace", func(t *testing.T) {
		doc := mustDoc(t, `<html><body>
			<script>var hidden = 1;</script>
			<style>.x { color: red }</style>
			<noscript>enable js</noscript>
			<p>Hello   world</p>
			<p>again</p>
		</body></html>`)

		got := contentPreview(doc)
		assert.Equal(t, "Hello world again", got)
	})

	t.Run("truncates long text with ellipsis", func(t *testing.T) {
		long := strings.Repeat("abcde ", 300) // well over 1000 chars
		doc := mustDoc(t, "<html><body><p>"+long+"</p></body></html>")

		got := contentPreview(doc)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len([]rune(got)), maxContentPreview+3)
	})

	t.Run("short text untouched", func(t *testing.T) {
		doc := mustDoc(t, "<html><body><p>short text</p></body></html>")
		assert.Equal(t, "short text", contentPreview(doc))
	})

	t.Run("empty body", func(t *testing.T) {
		doc := mustDoc(t, "<html><body><script>only();</script></body></html>")
		assert.Equal(t, NoContent, contentPreview(doc))
	})
}

func TestHeadings(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h1>First</h1>
		<h2>Section A</h2>
		<h2>  </h2>
		<h2>Section B</h2>
		<h4>Deep</h4>
	</body></html>`)

	got := headings(doc)

	assert.Equal(t, []string{"First"}, got["h1"])
	assert.Equal(t, []string{"Section A", "Section B"}, got["h2"])
	assert.Equal(t, []string{"Deep"}, got["h4"])
	assert.NotContains(t, got, "h3")
	assert.NotContains(t, got, "h5")
	assert.NotContains(t, got, "h6")
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "en-US", language(mustDoc(t, `<html lang="en-US"><body></body></html>`)))
	assert.Equal(t, NoLanguage, language(mustDoc(t, `<html><body></body></html>`)))
}

func TestCanonicalAndOGImage(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<link rel="canonical" href="https://x.com/canonical">
		<meta property="og:image" content="https://x.com/img.png">
	</head></html>`)

	canonical := canonicalURL(doc)
	require.NotNil(t, canonical)
	assert.Equal(t, "https://x.com/canonical", *canonical)

	image := ogImage(doc)
	require.NotNil(t, image)
	assert.Equal(t, "https://x.com/img.png", *image)

	empty := mustDoc(t, `<html></html>`)
	assert.Nil(t, canonicalURL(empty))
	assert.Nil(t, ogImage(empty))
}
