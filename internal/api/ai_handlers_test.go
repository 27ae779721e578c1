package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sitescope/backend/internal/ai"
)

type scriptedCompleter struct {
	replies []string
	calls   int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ string) (string, error) {
	reply := ""
	if s.calls < len(s.replies) {
		reply = s.replies[s.calls]
	}
	s.calls++
	return reply, nil
}

func aiRouter(gateway *ai.Gateway) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/ai")
	group.POST("/optimize-title/", OptimizeTitleHandler(gateway))
	group.POST("/optimize-description/", OptimizeDescriptionHandler(gateway))
	group.POST("/generate-keywords/", GenerateKeywordsHandler(gateway))
	group.POST("/content-improvements/", ContentImprovementsHandler(gateway))
	group.POST("/heading-suggestions/", HeadingSuggestionsHandler(gateway))
	group.POST("/comprehensive-analysis/", ComprehensiveAnalysisHandler(gateway))
	group.POST("/chat/", ChatHandler(gateway))
	return router
}

func TestAIRoutesUnavailableWithoutGateway(t *testing.T) {
	router := aiRouter(nil)

	routes := []string{
		"/api/ai/optimize-title/",
		"/api/ai/optimize-description/",
		"/api/ai/generate-keywords/",
		"/api/ai/content-improvements/",
		"/api/ai/heading-suggestions/",
		"/api/ai/comprehensive-analysis/",
		"/api/ai/chat/",
	}
	for _, route := range routes {
		w := postJSON(router, route, gin.H{})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, route)

		body := decodeBody(t, w)
		assert.Equal(t, "AI service not configured", body["error"], route)
	}
}

func TestOptimizeTitleEndpoint(t *testing.T) {
	completer := &scriptedCompleter{replies: []string{
		`[{"title": "Better Title", "length": 12, "reason": "clearer"}]`,
	}}
	router := aiRouter(ai.NewGateway(completer))

	w := postJSON(router, "/api/ai/optimize-title/", gin.H{
		"current_title":   "Home",
		"content_preview": "We sell shoes.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	suggestions := body["suggestions"].([]any)
	first := suggestions[0].(map[string]any)
	assert.Equal(t, "Better Title", first["title"])
}

func TestOptimizeTitleModelFailure(t *testing.T) {
	completer := &scriptedCompleter{replies: []string{"not json at all"}}
	router := aiRouter(ai.NewGateway(completer))

	w := postJSON(router, "/api/ai/optimize-title/", gin.H{"current_title": "Home"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "failed to parse model response")
}

func TestChatRequiresQuestion(t *testing.T) {
	completer := &scriptedCompleter{}
	router := aiRouter(ai.NewGateway(completer))

	w := postJSON(router, "/api/ai/chat/", gin.H{
		"scraped_data": gin.H{"url": "https://x.com"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Question is required", body["error"])
	assert.Equal(t, 0, completer.calls)
}

func TestChatReturnsBothQuestions(t *testing.T) {
	completer := &scriptedCompleter{replies: []string{
		"What concrete changes improve this page's title tag?",
		"Keep it under 60 characters and lead with the primary keyword.",
	}}
	router := aiRouter(ai.NewGateway(completer))

	w := postJSON(router, "/api/ai/chat/", gin.H{
		"question":     "how do I fix my title?",
		"scraped_data": gin.H{"url": "https://x.com", "meta_title": "Home"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Keep it under 60 characters and lead with the primary keyword.", body["answer"])
	assert.Equal(t, "What concrete changes improve this page's title tag?", body["optimized_question"])
	assert.Equal(t, "how do I fix my title?", body["original_question"])
}
