package textsplit

import (
	"fmt"
	"strings"
)

// Chunk is one indexable passage of a source document.
type Chunk struct {
	Key  string
	Text string
}

// MinChunkLen drops fragments too short to carry retrievable content.
const MinChunkLen = 50

// SplitParagraphs cuts a document into paragraph chunks on blank lines,
// skipping fragments shorter than MinChunkLen after trimming. Keys are
// stable across re-ingestion of the same document.
func SplitParagraphs(docKey, text string) []Chunk {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := strings.Split(normalized, "\n\n")

	var chunks []Chunk
	n := 0
	for _, p := range paragraphs {
		trimmed := strings.TrimSpace(p)
		if len(trimmed) < MinChunkLen {
			continue
		}
		n++
		chunks = append(chunks, Chunk{
			Key:  fmt.Sprintf("%s_para_%d", docKey, n),
			Text: trimmed,
		})
	}
	return chunks
}
