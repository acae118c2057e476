package handlers

import (
	"encoding/json"
	"net/http"

	"planpilot-backend/internal/models"
	"planpilot-backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	// A missing or malformed body counts as an empty message, which the
	// service answers with its canned greeting.
	var req models.ChatRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	resp, err := h.chatService.Respond(r.Context(), req.Prompt())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
