package diagnostic

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Diagnostics holds all diagnostic information collected while reading a
// structural description.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type identifies which described type this relates to (if any).
	Type string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Suggestions are close matches for a misspelled name.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typ, fieldPath string) {
	d.add(DiagnosticError, code, message, typ, fieldPath)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typ, fieldPath string) {
	d.add(DiagnosticWarning, code, message, typ, fieldPath)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typ, fieldPath string) {
	d.add(DiagnosticInfo, code, message, typ, fieldPath)
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, typ, fieldPath string) {
	d.Add(Diagnostic{Severity: sev, Code: code, Message: message, Type: typ, FieldPath: fieldPath})
}

// Add appends diag to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// All iterates over every diagnostic, most severe first, each severity in
// the order it was reported.
func (d *Diagnostics) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
			for _, diag := range list {
				if !yield(diag) {
					return
				}
			}
		}
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns the error diagnostics as an *Error, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return &Error{Diagnostics: slices.Clone(d.Errors)}
}

// Error is the error form of a failed validation.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}

	return strings.Join(parts, "; ")
}

// Codes returns the codes of the diagnostics in e, in order.
func (e *Error) Codes() []string {
	codes := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		codes[i] = d.Code
	}

	return codes
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(d.Suggestions), " or "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}

	return out
}
