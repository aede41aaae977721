package dto

import "time"

type AskRequest struct {
	ProjectID string `json:"projectId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Question  string `json:"question" example:"How long did the experiment run?"`
}

type CitationInfo struct {
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

type AskResponse struct {
	Question       string         `json:"question"`
	Answer         string         `json:"answer"`
	Citations      []CitationInfo `json:"citations"`
	DroppedMarkers int            `json:"droppedMarkers,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" example:"Climate research"`
	Description string `json:"description" example:"Papers on long-running experiments"`
}

type ProjectInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// generic response
type MessageResponse struct {
	Message string `json:"message" example:"Operation successful"`
}

// error response
type ErrorResponse struct {
	Error string `json:"error" example:"Something went wrong"`
}
