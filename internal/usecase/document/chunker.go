package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"research-api/internal/domain/entity"
)

const blockSeparator = "\n\n"

type Chunker struct {
	maxChars     int
	overlapChars int
}

// NewChunker creates a new chunker
func NewChunker(maxChars, overlapChars int) *Chunker {
	return &Chunker{
		maxChars:     maxChars,
		overlapChars: overlapChars,
	}
}

type blockSpan struct {
	start int
	end   int
	block entity.PositionedBlock
}

// Chunk groups positioned blocks into overlapping chunks. Blocks are
// accumulated greedily until the next block would exceed maxChars; each
// following chunk starts overlapChars before the previous chunk's end, so
// overlap regions appear in exactly two consecutive chunks. A single block
// larger than maxChars is hard-split at maxChars. The chunk's location is
// that of the block contributing its first character. Deterministic.
func (c *Chunker) Chunk(blocks []entity.PositionedBlock) ([]entity.DocumentChunk, error) {
	if c.maxChars <= 0 || c.overlapChars < 0 || c.overlapChars >= c.maxChars {
		return nil, fmt.Errorf("%w: max_chars=%d overlap_chars=%d", entity.ErrInvalidChunkParams, c.maxChars, c.overlapChars)
	}

	// canonical text with a span table mapping offsets back to blocks
	var sb strings.Builder
	spans := make([]blockSpan, 0, len(blocks))
	for i := range blocks {
		if blocks[i].Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(blockSeparator)
		}
		spans = append(spans, blockSpan{start: sb.Len(), end: sb.Len() + len(blocks[i].Text), block: blocks[i]})
		sb.WriteString(blocks[i].Text)
	}
	text := sb.String()
	if text == "" {
		return nil, nil
	}

	var chunks []entity.DocumentChunk
	start := 0
	bi := 0

	for start < len(text) {
		for bi < len(spans) && spans[bi].end <= start {
			bi++
		}

		// accumulate whole blocks while they fit
		end := start
		for j := bi; j < len(spans) && spans[j].end-start <= c.maxChars; j++ {
			end = spans[j].end
		}
		switch {
		case end == start:
			// current block alone exceeds maxChars: hard split
			end = splitAt(text, start, c.maxChars)
		case end < len(text) && end-start <= c.overlapChars:
			// next block boundary is inside the overlap region; extend so the
			// chunk always advances past the previous one
			end = splitAt(text, start, c.maxChars)
		}

		loc := locateBlock(spans, start)
		chunks = append(chunks, entity.DocumentChunk{
			ChunkIndex:      len(chunks),
			Content:         text[start:end],
			PageNumber:      loc.PageNumber,
			ParagraphNumber: loc.ParagraphNumber,
			CharStart:       start,
			CharEnd:         end,
		})

		if end >= len(text) {
			break
		}
		next := alignRune(text, end-c.overlapChars)
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks, nil
}

// splitAt returns the cut position at most maxChars bytes past start, backed
// up to a rune boundary so a hard split never produces invalid UTF-8. Only
// when a single rune exceeds the budget does the cut stay mid-rune, to keep
// the chunk advancing.
func splitAt(text string, start, maxChars int) int {
	end := min(start+maxChars, len(text))
	if aligned := alignRune(text, end); aligned > start {
		return aligned
	}
	return end
}

// alignRune backs pos up to the nearest rune boundary at or before it.
func alignRune(text string, pos int) int {
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

// locateBlock returns the block containing pos; a position inside a
// separator gap belongs to the following block.
func locateBlock(spans []blockSpan, pos int) entity.PositionedBlock {
	for i := range spans {
		if pos < spans[i].end {
			return spans[i].block
		}
	}
	return spans[len(spans)-1].block
}
