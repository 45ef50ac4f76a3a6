package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CaseSchema identifies which of the two parallel case record schemas a
// reference belongs to. The legacy schema is a migration artifact; both are
// served side by side and reconciled for callers.
type CaseSchema string

const (
	SchemaCurrent CaseSchema = "current"
	SchemaLegacy  CaseSchema = "legacy"
)

// legacyMarker prefixes raw identifiers of legacy-schema cases.
const legacyMarker = "legacy-"

// CaseRef is the canonical, schema-tagged identity of a case. Every component
// below the resolver consumes CaseRef, never the raw identifier, so schema
// branching happens in exactly one place.
type CaseRef struct {
	Schema CaseSchema `json:"schema"`
	ID     int        `json:"id"`
}

func (r CaseRef) IsLegacy() bool {
	return r.Schema == SchemaLegacy
}

// String renders the canonical ref back into its raw wire form.
func (r CaseRef) String() string {
	if r.Schema == SchemaLegacy {
		return fmt.Sprintf("%s%d", legacyMarker, r.ID)
	}
	return strconv.Itoa(r.ID)
}

// ResolveCaseRef converts a raw case reference into its canonical identity.
// Pure and deterministic: "legacy-<n>" resolves to the legacy schema with the
// marker stripped, anything else must be a positive integer id in the current
// schema.
func ResolveCaseRef(raw string) (CaseRef, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CaseRef{}, &ValidationError{Field: "case_ref", Message: "case reference is required"}
	}

	schema := SchemaCurrent
	if rest, ok := strings.CutPrefix(trimmed, legacyMarker); ok {
		schema = SchemaLegacy
		trimmed = rest
	}

	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return CaseRef{}, &ValidationError{
			Field:   "case_ref",
			Message: fmt.Sprintf("invalid case reference %q", raw),
		}
	}

	return CaseRef{Schema: schema, ID: id}, nil
}
