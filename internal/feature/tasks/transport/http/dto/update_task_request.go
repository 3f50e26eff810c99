package dto

// UpdateTaskReq represents the request body for PATCH /tasks/:id.
// All fields are optional; pointers distinguish an omitted field from an
// explicit zero value, so `"done": false` is a real update.
type UpdateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}
