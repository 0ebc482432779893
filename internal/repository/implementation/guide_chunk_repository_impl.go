package implementation

import (
	"context"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/mapper"
	"loan-agent-be/internal/model"
	"loan-agent-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type GuideChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuideChunkMapper
}

func NewGuideChunkRepository(db *gorm.DB) contract.GuideChunkRepository {
	return &GuideChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuideChunkMapper(),
	}
}

func (r *GuideChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.GuideChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuideChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.GuideChunk{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GuideChunkRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.GuideChunk{}).Error
}

// SearchSimilar orders by pgvector cosine distance: embedding <=> query
func (r *GuideChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.GuideChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.GuideChunk

	err := r.db.WithContext(ctx).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}
