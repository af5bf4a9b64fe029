package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostics holds the non-fatal findings of an introspection run.
// Anything fatal is returned as an error instead.
type Diagnostics struct {
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Instance identifies which block instance this relates to (if any).
	Instance string
	// Variable identifies which FMU variable this relates to (if any).
	Variable string
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, instance, variable string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Code:     code,
		Message:  message,
		Instance: instance,
		Variable: variable,
	})
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Instance != "" {
		prefix = append(prefix, "["+d.Instance+"]")
	}

	if d.Variable != "" {
		prefix = append(prefix, d.Variable)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
