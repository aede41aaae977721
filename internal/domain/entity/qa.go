package entity

// Citation resolves a bracketed marker in a generated answer back to the
// exact source location that supports it.
type Citation struct {
	SourceNum       int    `json:"sourceNum"`
	ChunkID         string `json:"chunkId"`
	DocumentID      string `json:"documentId"`
	DocumentName    string `json:"documentName"`
	PageNumber      int    `json:"pageNumber,omitempty"`
	ParagraphNumber int    `json:"paragraphNumber,omitempty"`
	CharStart       int    `json:"charStart"`
	CharEnd         int    `json:"charEnd"`
	Snippet         string `json:"snippet"`
}

// Answer is the citation-grounded result of a question against a project.
type Answer struct {
	Text           string     `json:"text"`
	Citations      []Citation `json:"citations"`
	DroppedMarkers int        `json:"droppedMarkers"`
}
