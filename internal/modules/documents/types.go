package documents

import "time"

// UploadResult is the per-file outcome of a batch upload.
type UploadResult struct {
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
	Size     int64  `json:"size"`
	Indexed  bool   `json:"indexed"`
	Error    string `json:"error,omitempty"`
}

// documentResponse is the list-endpoint item shape.
type documentResponse struct {
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
	FileSize   int64     `json:"file_size"`
	PageCount  int       `json:"page_count"`
	Chars      int       `json:"chars"`
	Version    string    `json:"version,omitempty"`
	Date       string    `json:"date,omitempty"`
}

// deleteDocumentDTO is the body of POST /delete-document.
type deleteDocumentDTO struct {
	Tenant   string `form:"tenant" json:"tenant" binding:"required"`
	Filename string `form:"filename" json:"filename" binding:"required"`
}

// tenantDTO is the body of POST /delete-all-documents.
type tenantDTO struct {
	Tenant string `form:"tenant" json:"tenant" binding:"required"`
}
