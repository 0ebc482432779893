package retrieval

import (
	"context"
	"fmt"
	"strings"

	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/embedding"
)

// Retriever answers a text query with the most relevant loan-guide
// passages, best first.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]string, error)
}

// JoinPassages renders retrieved passages the way the answer prompts
// expect them: separated by a horizontal rule.
func JoinPassages(passages []string) string {
	return strings.Join(passages, "\n---\n")
}

// PgVectorRetriever embeds the query and runs a cosine-distance search
// over the indexed guide chunks.
type PgVectorRetriever struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
}

var _ Retriever = &PgVectorRetriever{}

func NewPgVectorRetriever(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider) *PgVectorRetriever {
	return &PgVectorRetriever{
		uowFactory: uowFactory,
		embedder:   embedder,
	}
}

func (r *PgVectorRetriever) Query(ctx context.Context, text string, k int) ([]string, error) {
	vector, err := r.embedder.Generate(ctx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.GuideChunkRepository().SearchSimilar(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search guide chunks: %w", err)
	}

	passages := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		passages = append(passages, chunk.Content)
	}
	return passages, nil
}
