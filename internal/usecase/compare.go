package usecase

import (
	"context"
	"time"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
)

// Comparer runs the external generator and the local pipeline side by side
// for the same message, timing both paths.
type Comparer struct {
	provider repository.AIProvider
	trained  repository.Classifier
	composer *Composer
}

func NewComparer(provider repository.AIProvider, trained repository.Classifier, composer *Composer) *Comparer {
	return &Comparer{provider: provider, trained: trained, composer: composer}
}

func (c *Comparer) Run(ctx context.Context, message string) entity.Comparison {
	cmp := entity.Comparison{Input: message, Timestamp: time.Now().UTC()}

	if c.provider != nil && c.provider.IsAvailable() {
		start := time.Now()
		reply, err := c.provider.GenerateReply(ctx, message, "", entity.IntentGeneral)
		cmp.GeminiTimeMs = time.Since(start).Milliseconds()
		if err != nil {
			cmp.GeminiResponse = "Error: Failed to get Gemini response"
		} else {
			cmp.GeminiResponse = reply.Text
			cmp.GeminiConfidence = reply.Confidence
		}
	} else {
		cmp.GeminiResponse = "Error: Gemini AI not available (API key missing)"
	}

	start := time.Now()
	cls := c.trained.Classify(message)
	cmp.LocalResponse = c.composer.Compose(message, cls.Intent)
	cmp.LocalTimeMs = time.Since(start).Milliseconds()
	cmp.LocalConfidence = cls.Confidence

	return cmp
}
