package models

// SourceSystem is the sentinel recorded when an answer was synthesized from
// store state instead of a document.
const SourceSystem = "SISTEMA"

// ConversationModel is an append-only record of one question/answer exchange.
// Rows are never updated or deleted individually; the whole tenant history is
// wiped when the tenant is destroyed.
type ConversationModel struct {
	Base
	Tenant   string      `json:"tenant"   gorm:"index;not null"`
	Question string      `json:"question" gorm:"type:text;not null"`
	Answer   string      `json:"answer"   gorm:"type:text;not null"`
	Sources  StringSlice `json:"sources"  gorm:"type:longtext"`
}

func (ConversationModel) TableName() string { return "conversations" }
