package internal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation limits, matching what the bill amounts and dates can plausibly
// be for a Chilean household service.
const (
	MaxAmount             = 10_000_000 // CLP
	MaxDescriptionLen     = 500
	MaxNotesLen           = 1000
	MaxIssueFutureDays    = 365
	MaxIssuePastDays      = 3650
	MaxCutoffAfterDueDays = 30
)

// forbiddenChars are rejected in free-text fields to keep stored data safe
// to embed in reports and notification bodies.
var forbiddenChars = regexp.MustCompile(`[<>"']`)

// FieldError is a single validation failure tied to an input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violated rule so a caller can report all
// problems at once instead of stopping at the first.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid account: " + strings.Join(msgs, "; ")
}

// ValidateAccount checks every field rule independently and returns either
// nil or a ValidationErrors listing each violation.
func ValidateAccount(a Account, now time.Time) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := ParseServiceType(string(a.Service)); err != nil {
		add("service_type", "must be one of %v", ServiceTypes)
	}

	if a.Amount <= 0 {
		add("amount", "must be greater than 0")
	} else if a.Amount > MaxAmount {
		add("amount", "cannot exceed %s", FormatCLP(MaxAmount))
	}

	desc := strings.TrimSpace(a.Description)
	switch {
	case desc == "":
		add("description", "cannot be empty")
	case len(desc) > MaxDescriptionLen:
		add("description", "cannot exceed %d characters", MaxDescriptionLen)
	case forbiddenChars.MatchString(desc):
		add("description", `cannot contain <, >, " or '`)
	}

	if len(a.Notes) > MaxNotesLen {
		add("notes", "cannot exceed %d characters", MaxNotesLen)
	} else if forbiddenChars.MatchString(a.Notes) {
		add("notes", `cannot contain <, >, " or '`)
	}

	if a.IssueDate.IsZero() {
		add("issue_date", "is required")
	}
	if a.DueDate.IsZero() {
		add("due_date", "is required")
	}

	if !a.IssueDate.IsZero() && !a.DueDate.IsZero() && a.DueDate.Before(a.IssueDate) {
		add("due_date", "cannot be before the issue date")
	}

	if !a.IssueDate.IsZero() {
		today := dateOnly(now)
		if a.IssueDate.After(today.AddDate(0, 0, MaxIssueFutureDays)) {
			add("issue_date", "cannot be more than %d days in the future", MaxIssueFutureDays)
		}
		if a.IssueDate.Before(today.AddDate(0, 0, -MaxIssuePastDays)) {
			add("issue_date", "cannot be more than %d days in the past", MaxIssuePastDays)
		}
	}

	if !a.CutoffDate.IsZero() && !a.DueDate.IsZero() {
		if a.CutoffDate.Before(a.DueDate) {
			add("cutoff_date", "cannot be before the due date")
		} else if a.CutoffDate.After(a.DueDate.AddDate(0, 0, MaxCutoffAfterDueDays)) {
			add("cutoff_date", "cannot be more than %d days after the due date", MaxCutoffAfterDueDays)
		}
	}

	if !a.NextReadingDate.IsZero() && !a.IssueDate.IsZero() && a.NextReadingDate.Before(a.IssueDate) {
		add("next_reading_date", "cannot be before the issue date")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
