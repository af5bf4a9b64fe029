// Package naming derives wrapper variable names from signal exchange
// block instance paths. The mapping is pure and deterministic so the
// KPI manifest and the generated wrapper always agree on names.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Style -output=style_string.go

// Style selects which wrapper variable name is derived for an instance.
type Style int

const (
	_ Style = iota // skip zero value, use it as a default (invalid) value for Style

	// StyleInputSignal names the real-valued overwrite input, suffix "_u".
	StyleInputSignal
	// StyleInputActivate names the boolean activation input, suffix "_activate".
	StyleInputActivate
	// StyleOutput names the read output, suffix "_y".
	StyleOutput
)

// ErrUnknownStyle reports a style value outside the defined set.
var ErrUnknownStyle = errors.New("unknown variable name style")

// VarName makes a wrapper variable name from a block instance path:
// dots become underscores and a style-specific suffix is appended.
func VarName(instance string, style Style) (string, error) {
	name := strings.ReplaceAll(instance, ".", "_")

	switch style {
	case StyleInputSignal:
		return name + "_u", nil
	case StyleInputActivate:
		return name + "_activate", nil
	case StyleOutput:
		return name + "_y", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownStyle, style)
	}
}
