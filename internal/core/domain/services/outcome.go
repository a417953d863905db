package services

import (
	"fmt"
	"strings"
)

// Rule identifies the check that rejected a save or a delete.
type Rule string

const (
	RuleEmptyPackage       Rule = "empty_package"
	RuleDuplicatePackage   Rule = "duplicate_package"
	RuleMissingDestination Rule = "missing_destination"
	RuleDuplicateStop      Rule = "duplicate_stop"
	RuleInvalidEndEvent    Rule = "invalid_end_event"
	RuleIneligiblePackage  Rule = "ineligible_package"
	RuleProtectedEvents    Rule = "protected_events"
)

// Violation is a fatal validation failure. It is returned to the caller as
// part of an Outcome, not as an error.
type Violation struct {
	Rule     Rule
	Message  string
	Subjects []string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// Warning is an informational message; the operation still goes ahead.
type Warning struct {
	Title    string
	Message  string
	Subjects []string
}

// Outcome is the result of a validation: at most one violation (the first
// failing rule) plus any warnings.
type Outcome struct {
	Violation *Violation
	Warnings  []Warning
}

// OK reports whether the operation may proceed.
func (o Outcome) OK() bool {
	return o.Violation == nil
}

func reject(rule Rule, subjects []string, format string, args ...any) Outcome {
	return Outcome{Violation: &Violation{
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
		Subjects: subjects,
	}}
}

func joinSubjects(subjects []string) string {
	return strings.Join(subjects, ", ")
}
