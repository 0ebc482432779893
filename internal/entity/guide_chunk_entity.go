package entity

import (
	"time"

	"github.com/google/uuid"
)

// GuideChunk is one indexed passage of the loan guide document.
type GuideChunk struct {
	Id        uuid.UUID
	ChunkKey  string
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
