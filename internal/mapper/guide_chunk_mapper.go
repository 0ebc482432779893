package mapper

import (
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type GuideChunkMapper struct{}

func NewGuideChunkMapper() *GuideChunkMapper {
	return &GuideChunkMapper{}
}

func (m *GuideChunkMapper) ToEntity(g *model.GuideChunk) *entity.GuideChunk {
	if g == nil {
		return nil
	}
	return &entity.GuideChunk{
		Id:        g.Id,
		ChunkKey:  g.ChunkKey,
		Content:   g.Content,
		Embedding: g.Embedding.Slice(),
		CreatedAt: g.CreatedAt,
	}
}

func (m *GuideChunkMapper) ToModel(g *entity.GuideChunk) *model.GuideChunk {
	if g == nil {
		return nil
	}
	return &model.GuideChunk{
		Id:        g.Id,
		ChunkKey:  g.ChunkKey,
		Content:   g.Content,
		Embedding: pgvector.NewVector(g.Embedding),
		CreatedAt: g.CreatedAt,
	}
}

func (m *GuideChunkMapper) ToEntities(chunks []*model.GuideChunk) []*entity.GuideChunk {
	result := make([]*entity.GuideChunk, 0, len(chunks))
	for _, g := range chunks {
		result = append(result, m.ToEntity(g))
	}
	return result
}
