package dto

import "time"

type UploadDocumentResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type DocumentInfo struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"projectId"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalName"`
	FileSize     int64      `json:"fileSize"`
	MimeType     string     `json:"mimeType"`
	Format       string     `json:"format"`
	Title        string     `json:"title,omitempty"`
	Status       string     `json:"status"`
	Error        string     `json:"error,omitempty"`
	PageCount    int        `json:"pageCount"`
	TotalChunks  int        `json:"totalChunks"`
	CreatedAt    time.Time  `json:"createdAt"`
	IndexedAt    *time.Time `json:"indexedAt,omitempty"`
}

type ListDocumentsResponse struct {
	Data []DocumentInfo `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ChunkInfo struct {
	ID              string `json:"id"`
	ChunkIndex      int    `json:"chunkIndex"`
	Content         string `json:"content"`
	PageNumber      int    `json:"pageNumber,omitempty"`
	ParagraphNumber int    `json:"paragraphNumber,omitempty"`
	CharStart       int    `json:"charStart"`
	CharEnd         int    `json:"charEnd"`
}

type DocumentChunksResponse struct {
	DocumentID string      `json:"documentId"`
	Chunks     []ChunkInfo `json:"chunks"`
}
