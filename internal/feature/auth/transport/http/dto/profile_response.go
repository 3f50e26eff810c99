// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// ProfileResponse echoes the identity resolved from the bearer credential.
type ProfileResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
