// Package diagnostic provides structured errors, warnings and notes
// reported while reading structural descriptions.
//
// Key capabilities:
//   - Error/warning/info severities with stable codes
//   - Type and field path context for each message
//   - Did-you-mean suggestions for misspelled names
//   - A combined error value for callers that only need pass/fail
package diagnostic
