package qa

import (
	"testing"

	"research-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptNumbersEvidence(t *testing.T) {
	evidence := []entity.SimilarChunk{
		{DocumentChunk: entity.DocumentChunk{Content: "first excerpt"}},
		{DocumentChunk: entity.DocumentChunk{Content: "second excerpt"}},
	}

	system, user := buildPrompt("what happened?", evidence)

	assert.Contains(t, system, "research assistant")
	assert.Contains(t, user, "[1] first excerpt")
	assert.Contains(t, user, "[2] second excerpt")
	assert.Contains(t, user, "Question: what happened?")
}

func TestParseMarkers(t *testing.T) {
	cases := []struct {
		name        string
		answer      string
		n           int
		wantMarkers []int
		wantDropped int
	}{
		{"no markers", "plain answer", 3, nil, 0},
		{"in order", "fact [1] and fact [2]", 3, []int{1, 2}, 0},
		{"appearance order", "see [3], then [1]", 3, []int{3, 1}, 0},
		{"repeats kept", "[2] twice [2]", 3, []int{2, 2}, 0},
		{"out of range dropped", "real [1] fake [7] zero [0]", 3, []int{1}, 2},
		{"non-numeric ignored", "[ref] and [1]", 3, []int{1}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			markers, dropped := parseMarkers(tc.answer, tc.n)
			assert.Equal(t, tc.wantMarkers, markers)
			assert.Equal(t, tc.wantDropped, dropped)
		})
	}
}
