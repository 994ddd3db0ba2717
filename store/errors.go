package store

import "fmt"

// ValidationError reports a missing or malformed required field. It is
// raised before any network write is attempted.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

// Required returns a ValidationError for an empty required field.
func Required(entity, field string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: "required"}
}

// NotFoundError reports a mutation against an unknown record id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %q", e.Entity, e.ID)
}

// WriteError wraps a document-store create or update failure. The local
// state is left untouched when one occurs; no partial record is committed.
type WriteError struct {
	Entity string
	Op     string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Entity, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// AttachmentUploadError wraps an object-storage failure. Creates that carry
// an attachment upload it first and abort on failure, so a failed upload
// never leaves a committed record behind.
type AttachmentUploadError struct {
	Object string
	Err    error
}

func (e *AttachmentUploadError) Error() string {
	return fmt.Sprintf("attachment upload %q failed: %v", e.Object, e.Err)
}

func (e *AttachmentUploadError) Unwrap() error { return e.Err }
