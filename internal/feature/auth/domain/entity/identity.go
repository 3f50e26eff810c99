package entity

// Identity is the authenticated-identity value object produced by token
// verification. It carries exactly the two claims the rest of the system
// is allowed to trust and is threaded explicitly through every operation.
type Identity struct {
	// SubjectID is the identity provider's opaque unique id for the
	// authenticated principal.
	SubjectID string

	// Email is the verified email address asserted by the provider.
	Email string
}
