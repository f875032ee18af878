package llm_test

import (
	"strings"
	"testing"

	"github.com/rensmac/chat-summarizer/internal/llm"
)

func TestBuildSummaryPrompt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			"single message",
			"hello",
			"Summarize this chat: hello",
		},
		{
			"joined conversation",
			"hello how are you fine thanks",
			"Summarize this chat: hello how are you fine thanks",
		},
		{
			"empty text keeps the instruction",
			"",
			"Summarize this chat: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := llm.BuildSummaryPrompt(tt.text)
			if got != tt.expected {
				t.Errorf("BuildSummaryPrompt() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildSummaryPrompt_DoesNotRewriteText(t *testing.T) {
	text := "  spaced   out\nmulti line "
	got := llm.BuildSummaryPrompt(text)
	if !strings.HasSuffix(got, text) {
		t.Errorf("prompt should end with the original text, got %q", got)
	}
}
