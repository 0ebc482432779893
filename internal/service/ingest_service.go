package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/embedding"
	"loan-agent-be/pkg/textsplit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IIngestService interface {
	// Reindex replaces the indexed guide with the document at path.
	Reindex(ctx context.Context, path string) (int, error)

	// ChunkCount reports how many guide chunks are currently indexed.
	ChunkCount(ctx context.Context) (int64, error)
}

type ingestService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *zap.Logger
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger *zap.Logger,
) IIngestService {
	return &ingestService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (is *ingestService) Reindex(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read guide: %w", err)
	}

	docKey := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	chunks := textsplit.SplitParagraphs(docKey, string(raw))
	if len(chunks) == 0 {
		return 0, fmt.Errorf("guide %s produced no indexable chunks", path)
	}
	is.logger.Info("indexing guide",
		zap.String("path", path),
		zap.Int("chunks", len(chunks)),
	)

	// Embed outside the transaction; the provider calls are the slow part.
	entities := make([]*entity.GuideChunk, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := is.embeddingProvider.Generate(ctx, chunk.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %s: %w", chunk.Key, err)
		}
		entities = append(entities, &entity.GuideChunk{
			Id:        uuid.New(),
			ChunkKey:  chunk.Key,
			Content:   chunk.Text,
			Embedding: vector,
			CreatedAt: time.Now(),
		})
	}

	uow := is.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.GuideChunkRepository().DeleteAll(ctx); err != nil {
		return 0, err
	}
	for _, e := range entities {
		if err := uow.GuideChunkRepository().Create(ctx, e); err != nil {
			return 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	return len(entities), nil
}

func (is *ingestService) ChunkCount(ctx context.Context) (int64, error) {
	uow := is.uowFactory.NewUnitOfWork(ctx)
	return uow.GuideChunkRepository().Count(ctx)
}
