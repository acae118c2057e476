package services

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"planpilot-backend/internal/models"
)

const (
	chatModel       = "gpt-4o-mini"
	chatTemperature = 0.7

	greetingReply = "Hi! I'm your project planning assistant. Ask me about schedules, risks, or anything on your plan."
	fallbackReply = "I'm not sure how to respond to that."

	chatSystemPrompt = "You are a friendly, pragmatic project planning assistant. " +
		"Answer in a conversational tone, keep replies under 120 words, and use plain sentences rather than bullet lists unless the user asks for a list. " +
		"When the user describes schedule problems, suggest one concrete next step."
)

// SynthesisStatus distinguishes the three outcomes of the optional speech
// stage. All non-success outcomes collapse to a null audio field at the API
// boundary, but the distinction stays visible in logs.
type SynthesisStatus int

const (
	SynthesisSkipped SynthesisStatus = iota
	SynthesisFailed
	SynthesisSucceeded
)

// SynthesisResult carries the outcome of the speech stage for one reply.
type SynthesisResult struct {
	Status SynthesisStatus
	Audio  []byte
	Err    error
}

// ChatService orchestrates one completion call followed by an optional
// speech-synthesis call. Synthesis is purely additive and must never fail the
// chat response itself.
type ChatService struct {
	completions *CompletionClient
	speech      *SpeechClient
}

func NewChatService(completions *CompletionClient, speech *SpeechClient) *ChatService {
	return &ChatService{
		completions: completions,
		speech:      speech,
	}
}

// Respond produces the chat reply for one user message.
func (s *ChatService) Respond(ctx context.Context, message string) (models.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		// Empty intent gets a canned greeting, not an error.
		return models.ChatResponse{Reply: greetingReply}, nil
	}

	reply, err := s.completions.Complete(ctx, chatModel, chatTemperature, []models.ChatMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return models.ChatResponse{}, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = fallbackReply
	}

	resp := models.ChatResponse{Reply: reply}

	synth := s.synthesize(ctx, reply)
	switch synth.Status {
	case SynthesisSucceeded:
		encoded := base64.StdEncoding.EncodeToString(synth.Audio)
		resp.AudioBase64 = &encoded
	case SynthesisFailed:
		log.Printf("speech synthesis failed, continuing without audio: %v", synth.Err)
	}

	return resp, nil
}

func (s *ChatService) synthesize(ctx context.Context, text string) SynthesisResult {
	if !s.speech.Configured() {
		return SynthesisResult{Status: SynthesisSkipped}
	}
	audio, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		return SynthesisResult{Status: SynthesisFailed, Err: err}
	}
	return SynthesisResult{Status: SynthesisSucceeded, Audio: audio}
}
