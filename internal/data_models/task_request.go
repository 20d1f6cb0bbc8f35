package dto

// TaskRequestData is the create/update payload. CompletedAt is kept raw so
// an empty form field can mean "not completed".
type TaskRequestData struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	CompletedAt string `form:"completed_at" json:"completed_at"`
}
