package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func titlePrompt(currentTitle, metaDescription, contentPreview, keywords string) string {
	return fmt.Sprintf(`You are an expert SEO specialist. Analyze the following website data and generate 5 highly optimized meta title suggestions.

Current Meta Title: %s
Meta Description: %s
Content Preview: %s
Keywords: %s

Requirements for meta titles:
1. Length: 50-60 characters (optimal for Google search results)
2. Include primary keyword naturally
3. Be compelling and click-worthy
4. Accurately describe the page content
5. Use power words and emotional triggers
6. Avoid keyword stuffing
7. Make each suggestion unique and different in approach

Generate 5 creative and effective meta title options. Return ONLY a valid JSON array with this exact structure:
[
  {"title": "suggestion 1", "length": 55, "reason": "why this works"},
  {"title": "suggestion 2", "length": 58, "reason": "why this works"},
  {"title": "suggestion 3", "length": 52, "reason": "why this works"},
  {"title": "suggestion 4", "length": 57, "reason": "why this works"},
  {"title": "suggestion 5", "length": 54, "reason": "why this works"}
]

Return ONLY the JSON array, no additional text or explanation.`,
		currentTitle, metaDescription, truncateRunes(contentPreview, 500), keywords)
}

func descriptionPrompt(currentDescription, metaTitle, contentPreview, keywords string) string {
	return fmt.Sprintf(`You are an expert SEO specialist. Analyze the following website data and generate 5 highly optimized meta description suggestions.

Current Meta Description: %s
Meta Title: %s
Content Preview: %s
Keywords: %s

Requirements for meta descriptions:
1. Length: 150-160 characters (optimal for Google search results)
2. Include primary and secondary keywords naturally
3. Include a clear call-to-action
4. Provide compelling value proposition
5. Accurately summarize page content
6. Use active voice and persuasive language
7. Make each suggestion unique with different angles

Generate 5 creative and effective meta description options. Return ONLY a valid JSON array with this exact structure:
[
  {"description": "suggestion 1", "length": 155, "reason": "why this works"},
  {"description": "suggestion 2", "length": 158, "reason": "why this works"},
  {"description": "suggestion 3", "length": 152, "reason": "why this works"},
  {"description": "suggestion 4", "length": 157, "reason": "why this works"},
  {"description": "suggestion 5", "length": 154, "reason": "why this works"}
]

Return ONLY the JSON array, no additional text or explanation.`,
		currentDescription, metaTitle, truncateRunes(contentPreview, 500), keywords)
}

func keywordsPrompt(metaTitle, metaDescription, contentPreview string, headings []string) string {
	return fmt.Sprintf(`You are an expert SEO keyword researcher. Analyze the following website data and generate strategic keyword suggestions.

Meta Title: %s
Meta Description: %s
Content Preview: %s
Main Headings: %s

Analyze the content and generate:
1. Primary Keywords (3-5): Most important, high-value keywords
2. Secondary Keywords (5-8): Supporting keywords with good search potential
3. Long-tail Keywords (5-10): Specific phrases with lower competition
4. LSI Keywords (5-8): Semantically related keywords for context

Return ONLY a valid JSON object with this exact structure:
{
  "primary": ["keyword1", "keyword2", "keyword3"],
  "secondary": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"],
  "long_tail": ["long phrase 1", "long phrase 2", "long phrase 3"],
  "lsi": ["related1", "related2", "related3"]
}

Return ONLY the JSON object, no additional text or explanation.`,
		metaTitle, metaDescription, truncateRunes(contentPreview, 500), joinFirst(headings, 10))
}

func improvementsPrompt(contentPreview, metaTitle string, headings []string, targetKeywords string) string {
	return fmt.Sprintf(`You are an expert SEO content strategist. Analyze the following website content and provide actionable improvement recommendations.

Meta Title: %s
Main Headings: %s
Content Preview: %s
Target Keywords: %s

Analyze and provide specific recommendations for:
1. Content Structure: How to improve heading hierarchy and content flow
2. Keyword Optimization: Where and how to naturally incorporate keywords
3. Readability: Suggestions to improve clarity and engagement
4. SEO Best Practices: Technical and on-page SEO improvements
5. Call-to-Action: Suggestions for better user engagement

Return ONLY a valid JSON object with this exact structure:
{
  "structure": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "keywords": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "readability": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "seo": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "cta": ["suggestion 1", "suggestion 2", "suggestion 3"]
}

Return ONLY the JSON object, no additional text or explanation.`,
		metaTitle, joinFirst(headings, 5), truncateRunes(contentPreview, 800), targetKeywords)
}

func headingsPrompt(currentHeadings map[string][]string, metaTitle, contentPreview string) string {
	headingsJSON := "None"
	if len(currentHeadings) > 0 {
		if encoded, err := json.Marshal(currentHeadings); err == nil {
			headingsJSON = string(encoded)
		}
	}

	return fmt.Sprintf(`You are an expert SEO content optimizer. Analyze the current heading structure and suggest improvements.

Meta Title: %s
Current Headings: %s
Content Preview: %s

Analyze the heading structure and provide:
1. Improved H1 suggestions (2-3 options)
2. Strategic H2 suggestions (3-5 options) for main sections
3. Supporting H3 suggestions (3-5 options) for subsections
4. Overall structure recommendations

Requirements:
- H1 should be unique, keyword-rich, and compelling
- H2s should organize main topics logically
- H3s should support H2s with specific subtopics
- All headings should be scannable and descriptive

Return ONLY a valid JSON object with this exact structure:
{
  "h1": ["suggestion 1", "suggestion 2"],
  "h2": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "h3": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "recommendations": ["recommendation 1", "recommendation 2", "recommendation 3"]
}

Return ONLY the JSON object, no additional text or explanation.`,
		metaTitle, headingsJSON, truncateRunes(contentPreview, 500))
}

func analysisPrompt(data *PageData) string {
	return fmt.Sprintf(`You are an expert SEO auditor. Perform a comprehensive analysis of this website data.

Meta Title: %s
Meta Description: %s
Meta Keywords: %s
Content Length: %d bytes
Internal Links: %d
External Links: %d
Images: %d
Language: %s

Provide a comprehensive SEO audit with:
1. Overall SEO Score (0-100)
2. Critical Issues (3-5 most important problems)
3. Quick Wins (3-5 easy improvements with high impact)
4. Long-term Strategy (3-5 strategic recommendations)
5. Technical SEO Issues (3-5 technical problems)
6. Content Quality Assessment

Return ONLY a valid JSON object with this exact structure:
{
  "score": 75,
  "critical_issues": ["issue 1", "issue 2", "issue 3"],
  "quick_wins": ["win 1", "win 2", "win 3"],
  "strategy": ["strategy 1", "strategy 2", "strategy 3"],
  "technical": ["tech issue 1", "tech issue 2", "tech issue 3"],
  "content_quality": "Assessment paragraph describing content quality"
}

Return ONLY the JSON object, no additional text or explanation.`,
		data.MetaTitle, data.MetaDescription, data.MetaKeywords, data.ContentLength,
		data.InternalLinksCount, data.ExternalLinksCount, data.ImagesCount, data.Language)
}

func chatPrompt(question, optimizedQuestion, context, history string) string {
	return fmt.Sprintf(`You are an expert SEO and web analytics consultant. A user has analyzed a website and wants to ask questions about it.

Website Data:
%s
%s

User's Question: %s
Optimized Question: %s

IMPORTANT INSTRUCTIONS:
1. Keep your answer CONCISE and to-the-point (3-5 sentences max) unless the user explicitly asks for detailed analysis
2. Use data from the website analysis to support your answer
3. Format your response using markdown for better readability:
   - Use **bold** for emphasis
   - Use `+"`code`"+` for technical terms
   - Use numbered lists for steps (1. 2. 3.)
   - Use bullet points for lists (-)
4. Be specific and actionable
5. If the question asks for "detailed", "comprehensive", or "in-depth" analysis, then provide more detail

Your concise, markdown-formatted answer:`,
		context, history, question, optimizedQuestion)
}

func optimizeQuestionPrompt(question string, data *PageData) string {
	return fmt.Sprintf(`Given this user question about a website: "%s"

And knowing the website has:
- Title: %s
- Description: %s
- %d internal links
- %d external links

Rephrase this question to be more specific and actionable for SEO/website analysis. Make it clear and focused. Return ONLY the optimized question, nothing else.`,
		question, data.MetaTitle, data.MetaDescription,
		data.InternalLinksCount, data.ExternalLinksCount)
}

// websiteContext assembles the bounded context block for chat: selected
// page fields plus up to the first 3 heading texts per level.
func websiteContext(data *PageData) string {
	var headingsText strings.Builder
	for i := 1; i <= 6; i++ {
		tag := fmt.Sprintf("h%d", i)
		items, ok := data.Headings[tag]
		if !ok || len(items) == 0 {
			continue
		}
		headingsText.WriteString(fmt.Sprintf("\n%s: %s", strings.ToUpper(tag), joinFirst(items, 3)))
	}

	return fmt.Sprintf(`
URL: %s
Meta Title: %s
Meta Description: %s
Meta Keywords: %s
Content Length: %d bytes
Language: %s
Internal Links: %d
External Links: %d
Images: %d
Headings: %s
Content Preview: %s
`,
		data.URL, data.MetaTitle, data.MetaDescription, data.MetaKeywords,
		data.ContentLength, data.Language, data.InternalLinksCount,
		data.ExternalLinksCount, data.ImagesCount, headingsText.String(),
		truncateRunes(data.Content, 800))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func joinFirst(items []string, limit int) string {
	if len(items) == 0 {
		return "None"
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
