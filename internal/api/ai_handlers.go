package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sitescope/backend/internal/ai"
)

// OptimizeTitleRequest carries the page fields for title suggestions.
type OptimizeTitleRequest struct {
	CurrentTitle    string `json:"current_title"`
	MetaDescription string `json:"meta_description"`
	ContentPreview  string `json:"content_preview"`
	Keywords        string `json:"keywords"`
}

// OptimizeDescriptionRequest carries the page fields for description suggestions.
type OptimizeDescriptionRequest struct {
	CurrentDescription string `json:"current_description"`
	MetaTitle          string `json:"meta_title"`
	ContentPreview     string `json:"content_preview"`
	Keywords           string `json:"keywords"`
}

// GenerateKeywordsRequest carries the page fields for keyword research.
type GenerateKeywordsRequest struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	ContentPreview  string   `json:"content_preview"`
	Headings        []string `json:"headings"`
}

// ContentImprovementsRequest carries the fields for content recommendations.
type ContentImprovementsRequest struct {
	ContentPreview string   `json:"content_preview"`
	MetaTitle      string   `json:"meta_title"`
	Headings       []string `json:"headings"`
	TargetKeywords string   `json:"target_keywords"`
}

// HeadingSuggestionsRequest carries the current heading structure.
type HeadingSuggestionsRequest struct {
	CurrentHeadings map[string][]string `json:"current_headings"`
	MetaTitle       string              `json:"meta_title"`
	ContentPreview  string              `json:"content_preview"`
}

// ComprehensiveAnalysisRequest carries the full scraped record.
type ComprehensiveAnalysisRequest struct {
	ScrapedData ai.PageData `json:"scraped_data"`
}

// ChatRequest carries a question about the analyzed website.
type ChatRequest struct {
	Question    string           `json:"question"`
	ScrapedData ai.PageData      `json:"scraped_data"`
	ChatHistory []ai.ChatMessage `json:"chat_history"`
}

// requireGateway rejects AI requests when no API key was configured.
func requireGateway(c *gin.Context, gateway *ai.Gateway) bool {
	if gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "AI service not configured",
			"message": "Please add ANTHROPIC_API_KEY to your environment variables",
		})
		return false
	}
	return true
}

func aiFailure(c *gin.Context, operation string, err error) {
	logrus.Errorf("AI %s failed: %v", operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// OptimizeTitleHandler generates meta title suggestions
func OptimizeTitleHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req OptimizeTitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		suggestions, err := gateway.OptimizeTitle(c.Request.Context(),
			req.CurrentTitle, req.MetaDescription, req.ContentPreview, req.Keywords)
		if err != nil {
			aiFailure(c, "optimize-title", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
	}
}

// OptimizeDescriptionHandler generates meta description suggestions
func OptimizeDescriptionHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req OptimizeDescriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		suggestions, err := gateway.OptimizeDescription(c.Request.Context(),
			req.CurrentDescription, req.MetaTitle, req.ContentPreview, req.Keywords)
		if err != nil {
			aiFailure(c, "optimize-description", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
	}
}

// GenerateKeywordsHandler generates keyword suggestions
func GenerateKeywordsHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req GenerateKeywordsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		keywords, err := gateway.GenerateKeywords(c.Request.Context(),
			req.MetaTitle, req.MetaDescription, req.ContentPreview, req.Headings)
		if err != nil {
			aiFailure(c, "generate-keywords", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "keywords": keywords})
	}
}

// ContentImprovementsHandler generates content improvement suggestions
func ContentImprovementsHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req ContentImprovementsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		improvements, err := gateway.ContentImprovements(c.Request.Context(),
			req.ContentPreview, req.MetaTitle, req.Headings, req.TargetKeywords)
		if err != nil {
			aiFailure(c, "content-improvements", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "improvements": improvements})
	}
}

// HeadingSuggestionsHandler generates heading structure suggestions
func HeadingSuggestionsHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req HeadingSuggestionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		suggestions, err := gateway.HeadingSuggestions(c.Request.Context(),
			req.CurrentHeadings, req.MetaTitle, req.ContentPreview)
		if err != nil {
			aiFailure(c, "heading-suggestions", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
	}
}

// ComprehensiveAnalysisHandler generates a full SEO audit
func ComprehensiveAnalysisHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req ComprehensiveAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		analysis, err := gateway.ComprehensiveAnalysis(c.Request.Context(), &req.ScrapedData)
		if err != nil {
			aiFailure(c, "comprehensive-analysis", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
	}
}

// ChatHandler answers questions about the analyzed website
func ChatHandler(gateway *ai.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireGateway(c, gateway) {
			return
		}

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		if req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Question is required",
			})
			return
		}

		result, err := gateway.Chat(c.Request.Context(), req.Question, &req.ScrapedData, req.ChatHistory)
		if err != nil {
			aiFailure(c, "chat", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":            true,
			"answer":             result.Answer,
			"optimized_question": result.OptimizedQuestion,
			"original_question":  result.OriginalQuestion,
		})
	}
}
