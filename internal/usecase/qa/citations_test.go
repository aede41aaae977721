package qa

import (
	"strings"
	"testing"
	"unicode/utf8"

	"research-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evidenceFixture() []entity.SimilarChunk {
	return []entity.SimilarChunk{
		{DocumentChunk: entity.DocumentChunk{ID: "c1", DocumentID: "d1", DocumentName: "Paper A", PageNumber: 1, Content: "alpha content", CharStart: 0, CharEnd: 13}},
		{DocumentChunk: entity.DocumentChunk{ID: "c2", DocumentID: "d1", DocumentName: "Paper A", PageNumber: 2, Content: "beta content", CharStart: 15, CharEnd: 27}},
		{DocumentChunk: entity.DocumentChunk{ID: "c3", DocumentID: "d2", DocumentName: "Paper B", PageNumber: 1, Content: "gamma content", CharStart: 0, CharEnd: 13}},
	}
}

func TestLinkCitationsFollowsAppearanceOrder(t *testing.T) {
	citations := linkCitations([]int{3, 1}, evidenceFixture(), 200)

	require.Len(t, citations, 2)
	assert.Equal(t, 3, citations[0].SourceNum)
	assert.Equal(t, "c3", citations[0].ChunkID)
	assert.Equal(t, "Paper B", citations[0].DocumentName)
	assert.Equal(t, 1, citations[1].SourceNum)
	assert.Equal(t, "c1", citations[1].ChunkID)
}

func TestLinkCitationsCollapsesRepeats(t *testing.T) {
	citations := linkCitations([]int{2, 1, 2, 2, 1}, evidenceFixture(), 200)

	require.Len(t, citations, 2)
	assert.Equal(t, 2, citations[0].SourceNum)
	assert.Equal(t, 1, citations[1].SourceNum)
}

func TestLinkCitationsCarriesLocation(t *testing.T) {
	citations := linkCitations([]int{2}, evidenceFixture(), 200)

	require.Len(t, citations, 1)
	assert.Equal(t, "d1", citations[0].DocumentID)
	assert.Equal(t, 2, citations[0].PageNumber)
	assert.Equal(t, 15, citations[0].CharStart)
	assert.Equal(t, 27, citations[0].CharEnd)
}

func TestSnippetTruncation(t *testing.T) {
	long := strings.Repeat("w", 300)
	evidence := []entity.SimilarChunk{
		{DocumentChunk: entity.DocumentChunk{ID: "c1", Content: long}},
	}

	citations := linkCitations([]int{1}, evidence, 100)
	require.Len(t, citations, 1)
	assert.Len(t, citations[0].Snippet, 103)
	assert.True(t, strings.HasSuffix(citations[0].Snippet, "..."))

	// short content passes through untouched
	assert.Equal(t, "abc", snippet("abc", 100))
	// non-positive limit disables truncation
	assert.Equal(t, long, snippet(long, 0))
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	content := strings.Repeat("α", 100) // 200 bytes of two-byte runes

	got := snippet(content, 151)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("α", 75)+"...", got)
}
