package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI
	OpenAIAPIKey string

	// ElevenLabs (optional; speech synthesis is skipped when either is empty)
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// CORS
	AllowedOrigins []string

	// Uploads
	MaxUploadMB int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
		ElevenLabsAPIKey:  getEnvOrDefault("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: getEnvOrDefault("ELEVENLABS_VOICE_ID", ""),
		AllowedOrigins:    splitOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		MaxUploadMB:       getEnvAsIntOrDefault("MAX_UPLOAD_MB", 5),
	}

	return cfg
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
