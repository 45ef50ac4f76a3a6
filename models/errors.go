package models

import "fmt"

// ValidationError reports malformed input: empty document name, unparsable
// date, unresolved case reference. Terminal, never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NotFoundError reports an absent case, contact or requirement.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

// ConflictError reports an operation refused by a business rule, e.g. bulk
// deletion of a protected default document name. Terminal, never retried.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StoreError wraps a failed call against the backing data service. On writes
// the failed operation leaves no partial mutation behind.
type StoreError struct {
	Op     string
	Schema CaseSchema // empty when the failure is not schema-specific
	Err    error
}

func (e *StoreError) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("store %s failed for %s schema: %v", e.Op, e.Schema, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PartialResultError annotates a list call where one schema's query failed
// while the other succeeded. The surviving rows are still returned.
type PartialResultError struct {
	Schema CaseSchema
	Err    error
}

func (e *PartialResultError) Error() string {
	return fmt.Sprintf("%s schema query failed: %v", e.Schema, e.Err)
}

func (e *PartialResultError) Unwrap() error {
	return e.Err
}
