package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSpeechBaseURL = "https://api.elevenlabs.io"
	speechModelID        = "eleven_multilingual_v2"
	speechStability      = 0.5
	speechSimilarity     = 0.75
)

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// SpeechClient converts reply text into MP3 bytes via the ElevenLabs
// text-to-speech endpoint.
type SpeechClient struct {
	apiKey     string
	voiceID    string
	baseURL    string
	httpClient *http.Client
}

type SpeechOption func(*SpeechClient)

func WithSpeechBaseURL(baseURL string) SpeechOption {
	return func(c *SpeechClient) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithSpeechHTTPClient(httpClient *http.Client) SpeechOption {
	return func(c *SpeechClient) {
		c.httpClient = httpClient
	}
}

func NewSpeechClient(apiKey, voiceID string, opts ...SpeechOption) *SpeechClient {
	c := &SpeechClient{
		apiKey:     apiKey,
		voiceID:    voiceID,
		baseURL:    defaultSpeechBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both the API key and voice ID are present.
// Synthesis is skipped entirely when either is missing.
func (c *SpeechClient) Configured() bool {
	return c != nil && c.apiKey != "" && c.voiceID != ""
}

// Synthesize returns raw audio bytes for the given text.
func (c *SpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !c.Configured() {
		return nil, &ConfigError{Message: "speech service is not configured"}
	}

	body, err := json.Marshal(speechRequest{
		Text:    text,
		ModelID: speechModelID,
		VoiceSettings: voiceSettings{
			Stability:       speechStability,
			SimilarityBoost: speechSimilarity,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech: marshal request: %w", err)
	}

	url := c.baseURL + "/v1/text-to-speech/" + c.voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &UpstreamError{Service: "speech", StatusCode: res.StatusCode, Body: string(raw)}
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: read audio body: %w", err)
	}
	return audio, nil
}
