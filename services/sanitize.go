package services

import "strings"

const codeFence = "```"

// CleanAIResponseText strips a Markdown code fence (with or without a json
// language tag) wrapped around a model reply. Text after the closing fence
// is dropped. Unfenced replies are only trimmed.
func CleanAIResponseText(text string) string {
	cleanContent := strings.TrimSpace(text)
	if !strings.HasPrefix(cleanContent, codeFence) {
		return cleanContent
	}
	cleanContent = strings.TrimPrefix(cleanContent, codeFence)
	if body, _, found := strings.Cut(cleanContent, codeFence); found {
		cleanContent = body
	}
	cleanContent = strings.TrimSpace(cleanContent)
	if len(cleanContent) >= 4 && strings.EqualFold(cleanContent[:4], "json") {
		cleanContent = strings.TrimSpace(cleanContent[4:])
	}
	return cleanContent
}
