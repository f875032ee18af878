package llm

// summaryInstruction is the fixed prefix prepended to the conversation text
const summaryInstruction = "Summarize this chat: "

// BuildSummaryPrompt builds the prompt sent to a provider for summarization
func BuildSummaryPrompt(text string) string {
	return summaryInstruction + text
}
