package document

import (
	"testing"

	"research-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	extractor := NewTextExtractor()

	_, _, err := extractor.Extract([]byte("content"), entity.DocumentFormat("docx"))
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestExtractCorruptPDF(t *testing.T) {
	extractor := NewTextExtractor()

	_, _, err := extractor.Extract([]byte("definitely not a pdf"), entity.FormatPDF)
	assert.ErrorIs(t, err, entity.ErrExtraction)
}

func TestExtractText(t *testing.T) {
	extractor := NewTextExtractor()
	input := "First paragraph here.\n\nSecond paragraph here.\r\n\r\nThird one."

	blocks, title, err := extractor.Extract([]byte(input), entity.FormatText)
	require.NoError(t, err)
	assert.Empty(t, title)
	require.Len(t, blocks, 3)

	assert.Equal(t, "First paragraph here.", blocks[0].Text)
	assert.Equal(t, "Second paragraph here.", blocks[1].Text)
	assert.Equal(t, "Third one.", blocks[2].Text)
	assert.Equal(t, 1, blocks[0].ParagraphNumber)
	assert.Equal(t, 3, blocks[2].ParagraphNumber)
}

func TestExtractOffsetsAreContiguous(t *testing.T) {
	extractor := NewTextExtractor()
	input := "alpha\n\nbeta beta\n\ngamma gamma gamma"

	blocks, _, err := extractor.Extract([]byte(input), entity.FormatText)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, 0, blocks[0].StartOffset)
	for i, b := range blocks {
		assert.Equal(t, b.StartOffset+len(b.Text), b.EndOffset)
		if i > 0 {
			assert.Equal(t, blocks[i-1].EndOffset+2, b.StartOffset)
		}
	}
}

func TestExtractMarkdownTitle(t *testing.T) {
	extractor := NewTextExtractor()
	input := "# Field Notes\n\nThe survey covered twelve sites.\n\n## Methods\n\nEach site was visited twice."

	blocks, title, err := extractor.Extract([]byte(input), entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "Field Notes", title)
	require.NotEmpty(t, blocks)
	assert.Equal(t, "# Field Notes", blocks[0].Text)
}

func TestExtractHTML(t *testing.T) {
	extractor := NewTextExtractor()
	input := `<html>
<head><title>Survey Report</title><style>p { color: red }</style></head>
<body>
<script>var tracked = true;</script>
<h1>Introduction</h1>
<p>The   survey covered
twelve sites.</p>
<ul><li>Site A</li><li>Site B</li></ul>
</body>
</html>`

	blocks, title, err := extractor.Extract([]byte(input), entity.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "Survey Report", title)
	require.Len(t, blocks, 4)

	assert.Equal(t, "Introduction", blocks[0].Text)
	assert.Equal(t, "The survey covered twelve sites.", blocks[1].Text)
	assert.Equal(t, "Site A", blocks[2].Text)
	assert.Equal(t, "Site B", blocks[3].Text)

	for i, b := range blocks {
		assert.Equal(t, i+1, b.ParagraphNumber)
		assert.NotContains(t, b.Text, "tracked")
		assert.NotContains(t, b.Text, "color")
	}
}

func TestExtractHTMLTitleFallsBackToH1(t *testing.T) {
	extractor := NewTextExtractor()
	input := `<html><body><h1>Heading Only</h1><p>Body text.</p></body></html>`

	_, title, err := extractor.Extract([]byte(input), entity.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "Heading Only", title)
}
