// Package display renders run reports for humans and machines.
//
// Terminal output goes through text templates styled with lipgloss. Plain text
// uses the same templates with an ASCII color profile, so piping the output
// never leaks escape sequences. YAML output is the report itself.
package display
