// Package api provides the Gemini generateContent client.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandidates   = "candidates"
	PathPromptBlock  = "promptFeedback.blockReason"
	PathModelVersion = "modelVersion"

	// Relative to a candidate object
	PathCandParts        = "content.parts"
	PathCandPartTexts    = "content.parts.#.text"
	PathCandFinishReason = "finishReason"

	PathUsagePrompt     = "usageMetadata.promptTokenCount"
	PathUsageCandidates = "usageMetadata.candidatesTokenCount"
	PathUsageTotal      = "usageMetadata.totalTokenCount"

	// Error envelope: {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}
	PathErrorMessage = "error.message"
	PathErrorStatus  = "error.status"
	PathErrorReasons = "error.details.#.reason"
)

// Finish and block reasons that mean the provider withheld the answer
var blockedFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}
