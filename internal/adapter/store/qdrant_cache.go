package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/repository"
)

// QdrantCache is the semantic reply cache: generated answers are stored with
// an embedding of the originating message, and near-duplicate questions are
// served from the cache instead of calling the generator again.
type QdrantCache struct {
	client         *qdrant.Client
	collectionName string
	embedder       repository.Embedder
	threshold      float32
}

func NewQdrantCache(client *qdrant.Client, collectionName string, embedder repository.Embedder, threshold float32) *QdrantCache {
	return &QdrantCache{
		client:         client,
		collectionName: collectionName,
		embedder:       embedder,
		threshold:      threshold,
	}
}

func (s *QdrantCache) InitCollection(ctx context.Context, dim uint64) error {
	_, err := s.client.GetCollectionInfo(ctx, s.collectionName)
	if err != nil {
		st, ok := status.FromError(err)
		if ok && st.Code() == codes.NotFound {
			err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
				CollectionName: s.collectionName,
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     dim,
					Distance: qdrant.Distance_Cosine,
				}),
			})
			if err != nil {
				return fmt.Errorf("failed to create collection: %w", err)
			}
		} else {
			return err
		}
	}

	// Payload index for the freshness filter on created_at.
	_, err = s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: s.collectionName,
		FieldName:      "created_at",
		FieldType:      qdrant.FieldType_FieldTypeInteger.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		log.WithError(err).Warn("could not create created_at index (might already exist)")
	}

	return nil
}

// Lookup returns nil when nothing fresh scores above the threshold.
func (s *QdrantCache) Lookup(ctx context.Context, message string) (*entity.CachedReply, error) {
	vector, err := s.embedder.CreateEmbedding(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("embed message: %w", err)
	}

	// Only answers generated in the last 24 hours are eligible.
	oneDayAgo := time.Now().Add(-24 * time.Hour).Unix()
	freshness := &qdrant.Condition{
		ConditionOneOf: &qdrant.Condition_Field{
			Field: &qdrant.FieldCondition{
				Key: "created_at",
				Range: &qdrant.Range{
					Gte: qdrant.PtrOf(float64(oneDayAgo)),
				},
			},
		},
	}

	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         &qdrant.Filter{Must: []*qdrant.Condition{freshness}},
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
		ScoreThreshold: &s.threshold,
	})
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}

	hit := res[0]
	payload := hit.Payload

	return &entity.CachedReply{
		Answer:     payload["answer"].GetStringValue(),
		Intent:     entity.Intent(payload["intent"].GetStringValue()),
		Confidence: payload["confidence"].GetDoubleValue(),
		Score:      hit.Score,
	}, nil
}

func (s *QdrantCache) Store(ctx context.Context, message string, res entity.ChatResult) error {
	vector, err := s.embedder.CreateEmbedding(ctx, message)
	if err != nil {
		return fmt.Errorf("embed message: %w", err)
	}

	payload := map[string]any{
		"message":    message,
		"answer":     res.Answer,
		"intent":     string(res.Classification.Intent),
		"confidence": res.Classification.Confidence,
		"created_at": time.Now().Unix(),
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(uuid.NewString()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(payload),
			},
		},
	})
	return err
}
