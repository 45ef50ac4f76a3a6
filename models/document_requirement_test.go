package models

import "testing"

func TestStatusGuards(t *testing.T) {
	for _, status := range ValidStatuses() {
		if !IsStatusValid(status) {
			t.Errorf("%q should be valid", status)
		}
	}
	for _, status := range []string{"", "done", "PENDING", "received "} {
		if IsStatusValid(status) {
			t.Errorf("%q should not be valid", status)
		}
	}

	completed := map[string]bool{
		StatusMissing:  false,
		StatusPending:  false,
		StatusReceived: true,
		StatusApproved: true,
		StatusRejected: false,
	}
	for status, want := range completed {
		if IsCompletedStatus(status) != want {
			t.Errorf("IsCompletedStatus(%q) = %v, want %v", status, !want, want)
		}
	}
}

func TestCategoryGuards(t *testing.T) {
	for _, category := range ValidCategories() {
		if !IsCategoryValid(category) {
			t.Errorf("%q should be valid", category)
		}
	}
	if IsCategoryValid("misc") || IsCategoryValid("") {
		t.Error("unknown categories should not be valid")
	}
}

func TestProtectedDocumentNames(t *testing.T) {
	for _, name := range ProtectedDocumentNames() {
		if !IsProtectedDocumentName(name) {
			t.Errorf("%q should be protected", name)
		}
	}
	for _, name := range []string{"Birth Certificate", "passport copy", "Photo ID "} {
		if IsProtectedDocumentName(name) {
			t.Errorf("%q should not be protected", name)
		}
	}
}

func TestRequirementCaseRef(t *testing.T) {
	current := 12
	legacy := 7
	contact := 3

	req := DocumentRequirement{CaseID: &current}
	if got := req.CaseRef(); got != (CaseRef{Schema: SchemaCurrent, ID: 12}) {
		t.Errorf("CaseRef = %+v", got)
	}
	if !req.IsCaseWide() {
		t.Error("nil contact id means case-wide")
	}

	req = DocumentRequirement{LegacyCaseID: &legacy, ContactID: &contact}
	if got := req.CaseRef(); got != (CaseRef{Schema: SchemaLegacy, ID: 7}) {
		t.Errorf("CaseRef = %+v", got)
	}
	if req.IsCaseWide() {
		t.Error("contact-bound requirement is not case-wide")
	}
}

func TestSummarizeRequirements(t *testing.T) {
	summary := SummarizeRequirements([]DocumentRequirement{
		{IsRequired: true},
		{IsRequired: true},
		{IsRequired: false},
	})
	if summary.TotalDocuments != 3 || summary.RequiredDocuments != 2 || summary.OptionalDocuments != 1 {
		t.Errorf("summary = %+v", summary)
	}

	empty := SummarizeRequirements(nil)
	if empty.TotalDocuments != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
