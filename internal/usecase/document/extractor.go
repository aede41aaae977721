package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"research-api/internal/domain/entity"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract converts raw document bytes into positioned text blocks. Offsets
// are assigned over the canonical extracted text: blocks joined by a blank
// line, so StartOffset(i) = EndOffset(i-1) + 2.
func (te *TextExtractor) Extract(data []byte, format entity.DocumentFormat) ([]entity.PositionedBlock, string, error) {
	switch format {
	case entity.FormatPDF:
		return te.extractPDF(data)
	case entity.FormatHTML:
		return te.extractHTML(data)
	case entity.FormatMarkdown:
		return te.extractMarkdown(data)
	case entity.FormatText:
		return te.extractText(data)
	default:
		return nil, "", fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, format)
	}
}

func (te *TextExtractor) extractPDF(data []byte) ([]entity.PositionedBlock, string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read pdf: %v", entity.ErrExtraction, err)
	}

	var blocks []entity.PositionedBlock
	offset := 0
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		// paragraph numbering restarts per page
		for paraNum, para := range splitParagraphs(text) {
			blocks = appendBlock(blocks, &offset, entity.PositionedBlock{
				Text:            para,
				PageNumber:      i,
				ParagraphNumber: paraNum + 1,
			})
		}
	}

	return blocks, "", nil
}

func (te *TextExtractor) extractHTML(data []byte) ([]entity.PositionedBlock, string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: parse html: %v", entity.ErrExtraction, err)
	}

	var blocks []entity.PositionedBlock
	var title string
	offset := 0
	paraNum := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "title":
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
				return
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "blockquote", "pre":
				text := strings.TrimSpace(collapseSpace(nodeText(n)))
				if text != "" {
					if title == "" && n.Data == "h1" {
						title = text
					}
					paraNum++
					blocks = appendBlock(blocks, &offset, entity.PositionedBlock{
						Text:            text,
						ParagraphNumber: paraNum,
					})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return blocks, title, nil
}

func (te *TextExtractor) extractMarkdown(data []byte) ([]entity.PositionedBlock, string, error) {
	text := string(data)

	// title from the first heading
	var title string
	for _, line := range strings.SplitN(text, "\n", 20) {
		if strings.HasPrefix(line, "#") {
			title = strings.TrimSpace(strings.TrimLeft(line, "#"))
			break
		}
	}

	blocks := paragraphBlocks(text)
	return blocks, title, nil
}

func (te *TextExtractor) extractText(data []byte) ([]entity.PositionedBlock, string, error) {
	return paragraphBlocks(string(data)), "", nil
}

func paragraphBlocks(text string) []entity.PositionedBlock {
	var blocks []entity.PositionedBlock
	offset := 0
	for paraNum, para := range splitParagraphs(text) {
		blocks = appendBlock(blocks, &offset, entity.PositionedBlock{
			Text:            para,
			ParagraphNumber: paraNum + 1,
		})
	}
	return blocks
}

func appendBlock(blocks []entity.PositionedBlock, offset *int, block entity.PositionedBlock) []entity.PositionedBlock {
	if len(blocks) > 0 {
		*offset += 2 // blank-line separator in the canonical text
	}
	block.StartOffset = *offset
	block.EndOffset = *offset + len(block.Text)
	*offset = block.EndOffset
	return append(blocks, block)
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n+`)

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var paras []string
	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
