// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskReq represents the request body for POST /tasks.
// Title is mandatory; done defaults to false when omitted.
type CreateTaskReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}
