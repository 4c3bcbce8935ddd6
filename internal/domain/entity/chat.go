package entity

import "time"

// Intent is the categorical purpose assigned to a user message.
type Intent string

const (
	IntentProduct  Intent = "product"
	IntentFAQ      Intent = "faq"
	IntentBenefits Intent = "benefits"
	IntentGreeting Intent = "greeting"
	IntentGeneral  Intent = "general"
)

// Provider labels where the reply text came from.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderLocal  Provider = "local"
	ProviderHybrid Provider = "hybrid"
)

// Classification is one classifier's verdict for a single message.
// Confidence is always within [0,1].
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// ChatResult is the final outcome of the fallback pipeline for one message.
type ChatResult struct {
	Answer         string         `json:"answer"`
	Classification Classification `json:"classification"`
	Provider       Provider       `json:"aiProvider"`
}

// GeneratedReply is the text-in/text-out contract of the external AI.
type GeneratedReply struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// CachedReply is a previously generated answer recovered from the semantic cache.
type CachedReply struct {
	Answer     string
	Intent     Intent
	Confidence float64
	Score      float32
}

// GeneratorSettings are the runtime knobs of the external generator.
type GeneratorSettings struct {
	IsEnabled       bool    `json:"isEnabled"`
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"maxTokens"`
	FallbackEnabled bool    `json:"fallbackEnabled"`
}

// Comparison holds the side-by-side outcome of the external and local paths
// for the same message.
type Comparison struct {
	Input            string    `json:"input"`
	GeminiResponse   string    `json:"geminiResponse"`
	LocalResponse    string    `json:"localResponse"`
	GeminiTimeMs     int64     `json:"geminiTime"`
	LocalTimeMs      int64     `json:"localTime"`
	GeminiConfidence float64   `json:"geminiConfidence"`
	LocalConfidence  float64   `json:"localConfidence"`
	Timestamp        time.Time `json:"timestamp"`
}
