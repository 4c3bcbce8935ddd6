package usecase

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
)

// lowConfidenceThreshold triggers the lexical tertiary vote.
const lowConfidenceThreshold = 0.6

// Orchestrator runs the per-message fallback chain: external provider first,
// then the trained classifier, then the lexical scorer as a tertiary vote,
// with the composer guaranteeing a reply whenever no external text exists.
type Orchestrator struct {
	aiProvider repository.AIProvider
	trained    repository.Classifier
	lexical    repository.Classifier
	composer   *Composer
	replyCache repository.ReplyCache
}

// NewOrchestrator wires the pipeline. replyCache may be nil, which disables
// the semantic cache.
func NewOrchestrator(ai repository.AIProvider, trained, lexical repository.Classifier, composer *Composer, cache repository.ReplyCache) *Orchestrator {
	return &Orchestrator{
		aiProvider: ai,
		trained:    trained,
		lexical:    lexical,
		composer:   composer,
		replyCache: cache,
	}
}

// Execute resolves one inbound message to a reply. Terminal provider labels
// are gemini (external path succeeded), hybrid (external path failed midway)
// and local (external path never entered).
func (u *Orchestrator) Execute(ctx context.Context, message string) (entity.ChatResult, error) {
	res := entity.ChatResult{
		Classification: entity.Classification{Intent: entity.IntentGeneral, Confidence: 0.5},
		Provider:       entity.ProviderLocal,
	}

	if u.aiProvider != nil && u.aiProvider.IsAvailable() {
		if cached := u.lookupCache(ctx, message); cached != nil {
			return *cached, nil
		}

		external, err := u.generateExternal(ctx, message)
		if err == nil {
			u.saveCacheAsync(message, external)
			return external, nil
		}

		// Single attempt only: a failed external call downgrades the
		// provider label and falls through without any text.
		log.WithError(err).Warn("external AI failed, falling back to local model")
		res.Provider = entity.ProviderHybrid
	}

	local := u.trained.Classify(message)
	if res.Provider == entity.ProviderHybrid || local.Confidence > res.Classification.Confidence {
		res.Classification = local
	}

	if res.Classification.Confidence < lowConfidenceThreshold {
		fallback := u.lexical.Classify(message)
		if fallback.Confidence > res.Classification.Confidence {
			res.Classification = fallback
		}
	}

	if res.Answer == "" {
		res.Answer = u.composer.Compose(message, res.Classification.Intent)
	}
	return res, nil
}

func (u *Orchestrator) generateExternal(ctx context.Context, message string) (entity.ChatResult, error) {
	classification, err := u.aiProvider.ClassifyIntent(ctx, message)
	if err != nil {
		return entity.ChatResult{}, err
	}

	reply, err := u.aiProvider.GenerateReply(ctx, message, contextHint(classification.Intent), classification.Intent)
	if err != nil {
		return entity.ChatResult{}, err
	}

	if reply.Confidence > classification.Confidence {
		classification.Confidence = reply.Confidence
	}

	return entity.ChatResult{
		Answer:         reply.Text,
		Classification: classification,
		Provider:       entity.ProviderGemini,
	}, nil
}

// contextHint maps an intent to the instruction passed alongside the message.
// Intents outside the three knowledge domains get no extra context.
func contextHint(intent entity.Intent) string {
	switch intent {
	case entity.IntentProduct:
		return "Pelanggan bertanya tentang produk. Berikan informasi detail dan relevan."
	case entity.IntentFAQ:
		return "Pelanggan bertanya FAQ. Berikan jawaban langsung dan praktis."
	case entity.IntentBenefits:
		return "Pelanggan ingin tahu manfaat. Jelaskan manfaat kesehatan dengan faktual."
	default:
		return ""
	}
}

// lookupCache treats every cache error as a miss.
func (u *Orchestrator) lookupCache(ctx context.Context, message string) *entity.ChatResult {
	if u.replyCache == nil {
		return nil
	}
	hit, err := u.replyCache.Lookup(ctx, message)
	if err != nil {
		log.WithError(err).Warn("reply cache lookup failed")
		return nil
	}
	if hit == nil {
		return nil
	}
	return &entity.ChatResult{
		Answer:         hit.Answer,
		Classification: entity.Classification{Intent: hit.Intent, Confidence: hit.Confidence},
		Provider:       entity.ProviderGemini,
	}
}

func (u *Orchestrator) saveCacheAsync(message string, res entity.ChatResult) {
	if u.replyCache == nil {
		return
	}
	go func() {
		// The request context may be gone by the time this runs.
		bgCtx := context.Background()
		if err := u.replyCache.Store(bgCtx, message, res); err != nil {
			log.WithError(err).Warn("reply cache store failed")
		}
	}()
}
