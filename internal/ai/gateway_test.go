package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter replays scripted replies and records the prompts it saw.
type stubCompleter struct {
	replies []string
	errs    []error
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := len(s.prompts) - 1
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	reply := ""
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return reply, err
}

func TestOptimizeTitleDecodesFencedJSON(t *testing.T) {
	stub := &stubCompleter{replies: []string{
		"```json\n[{\"title\": \"Better Title\", \"length\": 12, \"reason\": \"shorter\"}]\n```",
	}}
	gateway := NewGateway(stub)

	suggestions, err := gateway.OptimizeTitle(context.Background(), "Old", "desc", "content", "kw")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Better Title", suggestions[0].Title)
	assert.Equal(t, 12, suggestions[0].Length)
	assert.Equal(t, "shorter", suggestions[0].Reason)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Old")
}

func TestOptimizeTitleRejectsMalformedReply(t *testing.T) {
	stub := &stubCompleter{replies: []string{"sorry, I cannot help with that"}}
	gateway := NewGateway(stub)

	_, err := gateway.OptimizeTitle(context.Background(), "Old", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse model response")
}

func TestGenerateKeywordsShape(t *testing.T) {
	stub := &stubCompleter{replies: []string{`{
		"primary": ["seo"],
		"secondary": ["audit", "ranking"],
		"long_tail": ["how to audit a website"],
		"lsi": ["search visibility"]
	}`}}
	gateway := NewGateway(stub)

	keywords, err := gateway.GenerateKeywords(context.Background(), "t", "d", "c", []string{"h1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"seo"}, keywords.Primary)
	assert.Equal(t, []string{"audit", "ranking"}, keywords.Secondary)
	assert.Equal(t, []string{"how to audit a website"}, keywords.LongTail)
	assert.Equal(t, []string{"search visibility"}, keywords.LSI)
}

func TestComprehensiveAnalysis(t *testing.T) {
	stub := &stubCompleter{replies: []string{`{
		"score": 72,
		"critical_issues": ["missing meta description"],
		"quick_wins": ["add alt text"],
		"strategy": ["publish weekly"],
		"technical": ["enable compression"],
		"content_quality": "thin"
	}`}}
	gateway := NewGateway(stub)

	analysis, err := gateway.ComprehensiveAnalysis(context.Background(), &PageData{URL: "https://x.com"})
	require.NoError(t, err)
	assert.Equal(t, 72, analysis.Score)
	assert.Equal(t, []string{"missing meta description"}, analysis.CriticalIssues)
	assert.Equal(t, "thin", analysis.ContentQuality)
}

func TestChatCarriesOptimizedQuestionAndHistory(t *testing.T) {
	stub := &stubCompleter{replies: []string{
		"What specific steps improve the page's meta title?",
		"Shorten it to under 60 characters.",
	}}
	gateway := NewGateway(stub)

	history := []ChatMessage{
		{Role: "user", Content: "turn 1"},
		{Role: "assistant", Content: "turn 2"},
		{Role: "user", Content: "turn 3"},
		{Role: "assistant", Content: "turn 4"},
		{Role: "user", Content: "turn 5"},
		{Role: "assistant", Content: "turn 6"},
		{Role: "user", Content: "turn 7"},
	}
	result, err := gateway.Chat(context.Background(), "how do I fix my title?",
		&PageData{URL: "https://x.com", MetaTitle: "Home"}, history)
	require.NoError(t, err)

	assert.Equal(t, "Shorten it to under 60 characters.", result.Answer)
	assert.Equal(t, "What specific steps improve the page's meta title?", result.OptimizedQuestion)
	assert.Equal(t, "how do I fix my title?", result.OriginalQuestion)

	// the final prompt keeps only the last 5 turns of history
	require.Len(t, stub.prompts, 2)
	chat := stub.prompts[1]
	assert.NotContains(t, chat, "turn 1")
	assert.NotContains(t, chat, "turn 2")
	assert.Contains(t, chat, "turn 3")
	assert.Contains(t, chat, "turn 7")
}

func TestChatFallsBackWhenOptimizationFails(t *testing.T) {
	stub := &stubCompleter{
		replies: []string{"", "Use fewer stop words."},
		errs:    []error{errors.New("model overloaded"), nil},
	}
	gateway := NewGateway(stub)

	result, err := gateway.Chat(context.Background(), "original question", &PageData{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "original question", result.OptimizedQuestion)
	assert.Equal(t, "Use fewer stop words.", result.Answer)
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n[1, 2]\n```  ", "[1, 2]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}
