package client

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

const systemPersona = `Anda adalah asisten customer service Amethyst Kombucha, produsen minuman kombucha artisanal.
Varian kami: Teh Hijau, Teh Hitam, Bunga Telang, Daun Kelor, Bunga Amarant, dan Kopi (Rp 25.000 - Rp 45.000 per botol).
Jawab dalam Bahasa Indonesia, ramah dan ringkas. Jangan mengarang informasi produk yang tidak disebutkan di atas.`

const classifyInstruction = `Klasifikasikan pesan pelanggan toko kombucha ke dalam salah satu intent:
product, faq, benefits, greeting, general.
Balas HANYA dengan objek JSON: {"intent": "...", "confidence": 0.85}`

// GeminiClient is the external AI collaborator. Availability is gated by the
// presence of an API credential; without one every call reports the provider
// as unavailable and the pipeline stays fully local.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewGeminiClient dials the Gemini API. An empty apiKey yields a disabled
// client rather than an error.
func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float64, maxTokens int) (*GeminiClient, error) {
	g := &GeminiClient{model: model, temperature: temperature, maxTokens: maxTokens}
	if apiKey == "" {
		return g, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.client = c
	return g, nil
}

// NewGeminiClientFromClient reuses an existing genai client.
func NewGeminiClientFromClient(c *genai.Client, model string, temperature float64, maxTokens int) *GeminiClient {
	return &GeminiClient{client: c, model: model, temperature: temperature, maxTokens: maxTokens}
}

func (g *GeminiClient) IsAvailable() bool {
	return g.client != nil
}

// Raw exposes the underlying genai client so sibling adapters (the embedder)
// can share the connection.
func (g *GeminiClient) Raw() *genai.Client {
	return g.client
}

// ClassifyIntent asks the model for a JSON intent verdict. Any transport or
// parse failure is surfaced as an error so the caller can fall back.
func (g *GeminiClient) ClassifyIntent(ctx context.Context, text string) (entity.Classification, error) {
	if g.client == nil {
		return entity.Classification{}, entity.ErrProviderDisabled
	}

	prompt := classifyInstruction + "\n\nPesan: " + text
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0)),
	})
	if err != nil {
		return entity.Classification{}, err
	}

	var out struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(result.Text()), &out); err != nil {
		return entity.Classification{}, fmt.Errorf("malformed classification payload: %w", err)
	}

	return entity.Classification{
		Intent:     normalizeIntent(out.Intent),
		Confidence: clamp01(out.Confidence),
	}, nil
}

// GenerateReply produces the answer text. Single attempt, no retry.
func (g *GeminiClient) GenerateReply(ctx context.Context, text, contextHint string, intent entity.Intent) (entity.GeneratedReply, error) {
	if g.client == nil {
		return entity.GeneratedReply{}, entity.ErrProviderDisabled
	}

	prompt := systemPersona
	if contextHint != "" {
		prompt += "\n\n" + contextHint
	}
	prompt += "\n\nPesan pelanggan: " + text

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.temperature)),
		MaxOutputTokens: int32(g.maxTokens),
	})
	if err != nil {
		return entity.GeneratedReply{}, err
	}

	answer := result.Text()
	if answer == "" {
		return entity.GeneratedReply{}, fmt.Errorf("empty response from model %s", g.model)
	}

	// The generator does not self-report certainty; a clean finish is scored
	// higher than a truncated or filtered one.
	confidence := 0.6
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonStop {
		confidence = 0.9
	}

	return entity.GeneratedReply{Text: answer, Confidence: confidence}, nil
}

func normalizeIntent(raw string) entity.Intent {
	switch entity.Intent(raw) {
	case entity.IntentProduct, entity.IntentFAQ, entity.IntentBenefits, entity.IntentGreeting:
		return entity.Intent(raw)
	default:
		return entity.IntentGeneral
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
