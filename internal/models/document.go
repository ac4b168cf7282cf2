package models

import "time"

// DocumentModel stores per-tenant document metadata. The extracted text lives
// in the in-memory store and the tenant's data directory, not in the row.
type DocumentModel struct {
	Base
	Tenant     string    `json:"tenant"      gorm:"index:idx_tenant_filename,unique;not null"`
	Filename   string    `json:"filename"    gorm:"index:idx_tenant_filename,unique;not null"`
	UploadDate time.Time `json:"upload_date"`
	FileSize   int64     `json:"file_size"`
	PageCount  int       `json:"page_count"`
}

func (DocumentModel) TableName() string { return "documents" }
