package classifier

import (
	"math"
	"strings"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/knowledge"
)

// lexicalWeights is the fixed token vocabulary of the bag-of-words scorer.
var lexicalWeights = map[string]float64{
	"produk":   0.8,
	"harga":    0.7,
	"beli":     0.9,
	"efek":     0.6,
	"manfaat":  0.8,
	"cara":     0.7,
	"kombucha": 0.9,
	"teh":      0.8,
	"hijau":    0.7,
	"hitam":    0.7,
	"kelor":    0.8,
	"telang":   0.8,
	"amarant":  0.8,
	"kopi":     0.7,
}

// LexicalScorer is the weight-sum fallback classifier. Scores are not
// normalized by token count, so a long message can saturate confidence at 1.
type LexicalScorer struct {
	kb *knowledge.Base
}

func NewLexicalScorer(kb *knowledge.Base) *LexicalScorer {
	return &LexicalScorer{kb: kb}
}

func (s *LexicalScorer) Classify(text string) entity.Classification {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	maxScore := 0.0
	bestIntent := entity.IntentGeneral

	var productScore float64
	for _, word := range words {
		productScore += lexicalWeights[word]
		if s.kb.MatchesLegacyProduct(word) {
			productScore++
		}
	}

	// Phrase groups are tested against the raw lowercased text, not tokens.
	var faqScore float64
	if strings.Contains(lower, "apa itu") || strings.Contains(lower, "bagaimana") || strings.Contains(lower, "cara") {
		faqScore += 0.8
	}
	if strings.Contains(lower, "harga") || strings.Contains(lower, "berapa") {
		faqScore += 0.9
	}
	if strings.Contains(lower, "beli") || strings.Contains(lower, "dimana") {
		faqScore += 0.9
	}
	if strings.Contains(lower, "efek") || strings.Contains(lower, "samping") {
		faqScore += 0.8
	}

	// Strictly-greater comparisons: on an exact tie the earlier branch keeps
	// the verdict. This ordering is part of the documented behavior.
	if productScore > maxScore {
		maxScore = productScore
		bestIntent = entity.IntentProduct
	}
	if faqScore > maxScore {
		maxScore = faqScore
		bestIntent = entity.IntentFAQ
	}

	return entity.Classification{Intent: bestIntent, Confidence: math.Min(maxScore, 1)}
}
