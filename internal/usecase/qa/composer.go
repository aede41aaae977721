package qa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"research-api/internal/domain/entity"
)

const systemPrompt = `You are a research assistant that answers questions using the provided source excerpts.
Cite your sources inline using bracketed numbers like [1], [2] whenever you use information from an excerpt.
Be precise and factual. If the excerpts do not contain the answer, say so clearly.`

// buildPrompt enumerates the retrieved chunks as numbered evidence items,
// in retrieval order, 1-indexed.
func buildPrompt(question string, evidence []entity.SimilarChunk) (system, user string) {
	var sb strings.Builder
	sb.WriteString("Source excerpts:\n\n")
	for i, ev := range evidence {
		fmt.Fprintf(&sb, "[%d] %s\n\n", i+1, ev.Content)
	}
	fmt.Fprintf(&sb, "Question: %s\n\nAnswer with inline [n] citations.", question)
	return systemPrompt, sb.String()
}

var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// parseMarkers extracts bracketed numeric citation markers from the answer
// in order of appearance. Markers outside [1, n] are dropped and counted;
// the generator sometimes invents numbers.
func parseMarkers(answer string, n int) (markers []int, dropped int) {
	for _, m := range markerPattern.FindAllStringSubmatch(answer, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 || num > n {
			dropped++
			continue
		}
		markers = append(markers, num)
	}
	return markers, dropped
}
