// Package ai builds prompts from scraped page data, submits them to an
// external text-completion model and decodes the replies into typed
// suggestion records.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Gateway exposes the SEO suggestion operations. It never retries and
// performs no semantic validation of model output; structural validation
// is limited to JSON-shape decoding.
type Gateway struct {
	completer TextCompleter
}

// NewGateway wraps a text completer. The completer is constructed once at
// process start and injected; the gateway holds no other configuration.
func NewGateway(completer TextCompleter) *Gateway {
	return &Gateway{completer: completer}
}

// OptimizeTitle generates meta title suggestions.
func (g *Gateway) OptimizeTitle(ctx context.Context, currentTitle, metaDescription, contentPreview, keywords string) ([]TitleSuggestion, error) {
	var suggestions []TitleSuggestion
	prompt := titlePrompt(currentTitle, metaDescription, contentPreview, keywords)
	if err := g.completeJSON(ctx, prompt, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// OptimizeDescription generates meta description suggestions.
func (g *Gateway) OptimizeDescription(ctx context.Context, currentDescription, metaTitle, contentPreview, keywords string) ([]DescriptionSuggestion, error) {
	var suggestions []DescriptionSuggestion
	prompt := descriptionPrompt(currentDescription, metaTitle, contentPreview, keywords)
	if err := g.completeJSON(ctx, prompt, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// GenerateKeywords generates strategic keyword suggestions.
func (g *Gateway) GenerateKeywords(ctx context.Context, metaTitle, metaDescription, contentPreview string, headings []string) (*KeywordSet, error) {
	var keywords KeywordSet
	prompt := keywordsPrompt(metaTitle, metaDescription, contentPreview, headings)
	if err := g.completeJSON(ctx, prompt, &keywords); err != nil {
		return nil, err
	}
	return &keywords, nil
}

// ContentImprovements generates content improvement recommendations.
func (g *Gateway) ContentImprovements(ctx context.Context, contentPreview, metaTitle string, headings []string, targetKeywords string) (*Improvements, error) {
	var improvements Improvements
	prompt := improvementsPrompt(contentPreview, metaTitle, headings, targetKeywords)
	if err := g.completeJSON(ctx, prompt, &improvements); err != nil {
		return nil, err
	}
	return &improvements, nil
}

// HeadingSuggestions generates an improved heading structure.
func (g *Gateway) HeadingSuggestions(ctx context.Context, currentHeadings map[string][]string, metaTitle, contentPreview string) (*HeadingIdeas, error) {
	var ideas HeadingIdeas
	prompt := headingsPrompt(currentHeadings, metaTitle, contentPreview)
	if err := g.completeJSON(ctx, prompt, &ideas); err != nil {
		return nil, err
	}
	return &ideas, nil
}

// ComprehensiveAnalysis performs a full SEO audit of the scraped data.
func (g *Gateway) ComprehensiveAnalysis(ctx context.Context, data *PageData) (*Analysis, error) {
	var analysis Analysis
	if err := g.completeJSON(ctx, analysisPrompt(data), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Chat answers a free-text question about the analyzed website. The
// question is first reworded into a more specific form (returned alongside
// the answer); the final prompt carries a bounded context block and up to
// the last 5 prior turns.
func (g *Gateway) Chat(ctx context.Context, question string, data *PageData, history []ChatMessage) (*ChatResult, error) {
	optimized := g.optimizeQuestion(ctx, question, data)

	historyText := ""
	if len(history) > 0 {
		if len(history) > 5 {
			history = history[len(history)-5:]
		}
		var sb strings.Builder
		sb.WriteString("\n\nPrevious conversation:\n")
		for _, msg := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
		historyText = sb.String()
	}

	prompt := chatPrompt(question, optimized, websiteContext(data), historyText)
	answer, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Answer:            answer,
		OptimizedQuestion: optimized,
		OriginalQuestion:  question,
	}, nil
}

// optimizeQuestion rewords the user's question. Failures fall back to the
// original question so chat keeps working.
func (g *Gateway) optimizeQuestion(ctx context.Context, question string, data *PageData) string {
	reworded, err := g.completer.Complete(ctx, optimizeQuestionPrompt(question, data))
	if err != nil {
		return question
	}
	if reworded = strings.TrimSpace(reworded); reworded == "" {
		return question
	}
	return reworded
}

// completeJSON submits the prompt and decodes the reply into target after
// stripping any surrounding code fence.
func (g *Gateway) completeJSON(ctx context.Context, prompt string, target any) error {
	reply, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	text := stripCodeFence(reply)
	if err := json.Unmarshal([]byte(text), target); err != nil {
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}

// stripCodeFence removes optional ``` fencing (with an optional json
// language tag) around the model's reply.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	parts := strings.SplitN(text, "```", 3)
	if len(parts) < 2 {
		return text
	}
	inner := strings.TrimPrefix(strings.TrimSpace(parts[1]), "json")
	return strings.TrimSpace(inner)
}
