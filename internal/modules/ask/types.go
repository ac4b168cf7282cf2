package ask

type askDTO struct {
	Tenant   string `json:"tenant" binding:"required"`
	Question string `json:"q" binding:"required"`
}

// Result is a resolved answer plus the citations backing it.
type Result struct {
	Answer  string
	Sources []string
}
