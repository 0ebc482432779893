package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParagraphs(t *testing.T) {
	long1 := strings.Repeat("home loan interest rates and tenure details. ", 3)
	long2 := strings.Repeat("eligibility criteria for salaried applicants. ", 3)
	doc := long1 + "\n\nshort\n\n" + long2

	chunks := SplitParagraphs("loan_guide", doc)

	require.Len(t, chunks, 2)
	assert.Equal(t, "loan_guide_para_1", chunks[0].Key)
	assert.Equal(t, "loan_guide_para_2", chunks[1].Key)
	assert.Equal(t, strings.TrimSpace(long1), chunks[0].Text)
}

func TestSplitParagraphsNormalizesLineEndings(t *testing.T) {
	long := strings.Repeat("processing fees vary with the product chosen. ", 3)
	doc := strings.TrimSpace(long) + "\r\n\r\n" + strings.TrimSpace(long)

	chunks := SplitParagraphs("guide", doc)
	assert.Len(t, chunks, 2)
}

func TestSplitParagraphsEmptyDocument(t *testing.T) {
	assert.Empty(t, SplitParagraphs("guide", ""))
	assert.Empty(t, SplitParagraphs("guide", "too short\n\nalso short"))
}
