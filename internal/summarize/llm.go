package summarize

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the slice of the OpenAI-compatible client the summarizer
// uses, kept narrow so tests can substitute a fake backend.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const llmSystemPrompt = "Condense the provided web page text into a short, " +
	"factual summary of at most five sentences. Use only information present " +
	"in the text. Output plain prose with no headings or lists."

// LLMSummarizer condenses text via an OpenAI-compatible chat endpoint.
// Any backend failure degrades to the Fallback summarizer so callers
// always get a summary.
type LLMSummarizer struct {
	Client   ChatClient
	Model    string
	Fallback Summarizer
}

func (s *LLMSummarizer) Summarize(ctx context.Context, text string) string {
	if s.Client == nil || strings.TrimSpace(s.Model) == "" {
		return s.fallback(ctx, text)
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}
	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		log.Warn().Err(err).Str("model", s.Model).Msg("LLM summary failed; using lead sentences")
		return s.fallback(ctx, text)
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("model", s.Model).Msg("LLM returned no choices; using lead sentences")
		return s.fallback(ctx, text)
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return s.fallback(ctx, text)
	}
	return summary
}

func (s *LLMSummarizer) fallback(ctx context.Context, text string) string {
	fb := s.Fallback
	if fb == nil {
		fb = LeadSummarizer{}
	}
	return fb.Summarize(ctx, text)
}
