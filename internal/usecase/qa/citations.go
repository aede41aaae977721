package qa

import (
	"unicode/utf8"

	"research-api/internal/domain/entity"
)

// linkCitations resolves markers to their evidence chunks. Output order
// follows first appearance in the answer text, not retrieval rank; repeated
// markers collapse to a single citation.
func linkCitations(markers []int, evidence []entity.SimilarChunk, snippetLen int) []entity.Citation {
	citations := make([]entity.Citation, 0, len(markers))
	seen := make(map[int]bool, len(markers))

	for _, num := range markers {
		if seen[num] {
			continue
		}
		seen[num] = true

		ev := evidence[num-1]
		citations = append(citations, entity.Citation{
			SourceNum:       num,
			ChunkID:         ev.ID,
			DocumentID:      ev.DocumentID,
			DocumentName:    ev.DocumentName,
			PageNumber:      ev.PageNumber,
			ParagraphNumber: ev.ParagraphNumber,
			CharStart:       ev.CharStart,
			CharEnd:         ev.CharEnd,
			Snippet:         snippet(ev.Content, snippetLen),
		})
	}
	return citations
}

func snippet(content string, maxLen int) string {
	if maxLen <= 0 || len(content) <= maxLen {
		return content
	}
	// cut on a rune boundary so multibyte content stays valid UTF-8
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
