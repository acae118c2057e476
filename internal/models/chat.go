package models

// ChatMessage is a single role-tagged entry sent to the completion service.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. Text is an alias for
// Message kept for older front-end builds that still post {"text": ...}.
type ChatRequest struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

// Prompt returns the effective user message, preferring the canonical field.
func (r ChatRequest) Prompt() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Text
}

// ChatResponse is the reply from the AI chat. AudioBase64 is nil unless
// speech synthesis is configured and succeeded.
type ChatResponse struct {
	Reply       string  `json:"reply"`
	AudioBase64 *string `json:"audioBase64"`
}
