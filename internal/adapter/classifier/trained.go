package classifier

import (
	"math"
	"strings"
	"sync"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

// intentProfile holds the precomputed term and phrase weights for one intent.
type intentProfile struct {
	intent  entity.Intent
	terms   map[string]float64
	phrases map[string]float64
}

// TrainedClassifier wraps the richer precomputed intent model. It is built
// once per process and reused; construction goes through NewTrainedClassifier
// which is guarded by a sync.Once so concurrent first requests cannot race.
type TrainedClassifier struct {
	// Profiles are scored in declaration order; ties keep the earlier verdict.
	profiles []intentProfile
}

var (
	trainedOnce     sync.Once
	trainedInstance *TrainedClassifier
)

// NewTrainedClassifier returns the process-wide classifier instance.
func NewTrainedClassifier() *TrainedClassifier {
	trainedOnce.Do(func() {
		trainedInstance = buildTrainedClassifier()
	})
	return trainedInstance
}

func buildTrainedClassifier() *TrainedClassifier {
	return &TrainedClassifier{
		profiles: []intentProfile{
			{
				intent: entity.IntentProduct,
				terms: map[string]float64{
					"produk": 0.85, "varian": 0.75, "rasa": 0.5, "botol": 0.4,
					"kombucha": 0.55, "teh": 0.5, "hijau": 0.45, "hitam": 0.45,
					"telang": 0.55, "kelor": 0.55, "amarant": 0.55, "kopi": 0.45,
				},
				phrases: map[string]float64{
					"bunga telang": 0.35, "daun kelor": 0.35, "bunga amarant": 0.35,
				},
			},
			{
				intent: entity.IntentFAQ,
				terms: map[string]float64{
					"harga": 0.8, "berapa": 0.6, "beli": 0.8, "dimana": 0.6,
					"pesan": 0.55, "order": 0.55, "kirim": 0.5, "aman": 0.55,
					"efek": 0.7, "samping": 0.5, "cara": 0.55, "minum": 0.4,
				},
				phrases: map[string]float64{
					"apa itu": 0.9, "bagaimana cara": 0.9,
				},
			},
			{
				intent: entity.IntentBenefits,
				terms: map[string]float64{
					"manfaat": 0.95, "khasiat": 0.95, "kesehatan": 0.6,
					"sehat": 0.5, "imun": 0.6, "pencernaan": 0.6,
					"probiotik": 0.55, "antioksidan": 0.55, "detoks": 0.6,
				},
				phrases: map[string]float64{
					"baik untuk": 0.5,
				},
			},
			{
				intent: entity.IntentGreeting,
				terms: map[string]float64{
					"halo": 0.95, "hai": 0.95, "hello": 0.95, "hi": 0.8,
					"pagi": 0.5, "siang": 0.5, "malam": 0.5, "permisi": 0.7,
				},
				phrases: map[string]float64{
					"selamat datang": 0.6, "selamat pagi": 0.5, "selamat siang": 0.5, "selamat malam": 0.5,
				},
			},
		},
	}
}

func (c *TrainedClassifier) Classify(text string) entity.Classification {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	maxScore := 0.0
	bestIntent := entity.IntentGeneral

	for _, profile := range c.profiles {
		var score float64
		for _, word := range words {
			score += profile.terms[word]
		}
		for phrase, weight := range profile.phrases {
			if strings.Contains(lower, phrase) {
				score += weight
			}
		}
		if score > maxScore {
			maxScore = score
			bestIntent = profile.intent
		}
	}

	return entity.Classification{Intent: bestIntent, Confidence: math.Min(maxScore, 1)}
}
