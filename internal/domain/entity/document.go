package entity

import "time"

type DocumentStatus string
type DocumentFormat string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusIndexed    DocumentStatus = "indexed"
	StatusFailed     DocumentStatus = "failed"

	FormatPDF      DocumentFormat = "pdf"
	FormatHTML     DocumentFormat = "html"
	FormatMarkdown DocumentFormat = "markdown"
	FormatText     DocumentFormat = "text"
)

type Document struct {
	ID           string         `db:"id" json:"id"`
	ProjectID    string         `db:"project_id" json:"projectId"`
	Filename     string         `db:"filename" json:"filename"`
	OriginalName string         `db:"original_name" json:"originalName"`
	FilePath     string         `db:"file_path" json:"-"`
	FileSize     int64          `db:"file_size" json:"fileSize"`
	MimeType     string         `db:"mime_type" json:"mimeType"`
	Format       DocumentFormat `db:"format" json:"format"`
	Title        string         `db:"title" json:"title"`
	Status       DocumentStatus `db:"status" json:"status"`
	Error        string         `db:"error" json:"error,omitempty"`
	PageCount    int            `db:"page_count" json:"pageCount"`
	TotalChunks  int            `db:"total_chunks" json:"totalChunks"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
	IndexedAt    *time.Time     `db:"indexed_at" json:"indexedAt,omitempty"`
}
