package contract

import (
	"context"

	"loan-agent-be/internal/entity"
)

type GuideChunkRepository interface {
	Create(ctx context.Context, chunk *entity.GuideChunk) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	// SearchSimilar returns the chunks nearest to the query embedding by
	// cosine distance, best first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.GuideChunk, error)
}
