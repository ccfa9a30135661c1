package services

import "fmt"

// ValidationError marks a request the client can fix (empty cart,
// non-positive quantity). Maps to 400 in the API layer.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError marks a referenced record that does not exist or, for menu
// items, is currently unavailable. Maps to 404.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found or not available", e.Resource, e.ID)
}

// AuthenticationRequiredError marks an operation that needs a signed-in
// caller but got a guest. Maps to 401.
type AuthenticationRequiredError struct{}

func (e *AuthenticationRequiredError) Error() string {
	return "authentication required"
}

// PersistenceError wraps a storage failure. The enclosing transaction has
// rolled back, so the caller may safely retry. Maps to 500.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
