package cnext

import (
	"fmt"
	"strings"
)

// ErrorKind tags the fixed taxonomy of failures the transpiler can
// report. These are kinds, not Go types: every one of them is carried
// by a Diagnostic.
type ErrorKind string

const (
	KindSyntaxError               ErrorKind = "syntax-error"
	KindEnumNegative              ErrorKind = "enum-negative"
	KindBitmapWidthMismatch       ErrorKind = "bitmap-width-mismatch"
	KindCapacitySizeOnNonString   ErrorKind = "capacity-size-on-non-string"
	KindRegisterReadOnly          ErrorKind = "register-read-only"
	KindUnknownTypeReference      ErrorKind = "unknown-type-reference"
	KindIncludeNotFound           ErrorKind = "include-not-found"
	KindInvalidConstantExpression ErrorKind = "invalid-constant-expression"
)

// Severity mirrors the parser's severity levels: a SeverityWarning
// diagnostic (e.g. IncludeNotFound) never aborts a translation unit;
// a SeverityError one is fatal for code-gen once reached (§7).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Location is a 1-indexed line/column position within a source file.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Diagnostic is the unit of reporting for every failure kind in §7.
// Partial parse trees and partial collection results may still
// accompany a Diagnostic; only SeverityError diagnostics are fatal.
type Diagnostic struct {
	Kind     ErrorKind
	Severity Severity
	Message  string
	File     string
	At       Location
}

// Error implements the error interface so a single Diagnostic can be
// returned and handled like any other Go error.
func (d Diagnostic) Error() string {
	return d.FormatCLI()
}

// FormatCLI renders the diagnostic the way the host CLI prints it:
// "<severity>: <message> @ <file>:<line>:<col>".
func (d Diagnostic) FormatCLI() string {
	prefix := "Error"
	if d.Severity == SeverityWarning {
		prefix = "Warning"
	}
	if d.File == "" {
		return fmt.Sprintf("%s: %s", prefix, d.Message)
	}
	return fmt.Sprintf("%s: %s @ %s:%s", prefix, d.Message, d.File, d.At)
}

// TranspileError aggregates every diagnostic produced while processing
// one translation unit. It is returned instead of a bare Diagnostic
// whenever more than one problem was found.
type TranspileError struct {
	Diagnostics []Diagnostic
}

func NewTranspileError(diags []Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	return &TranspileError{Diagnostics: diags}
}

func (e *TranspileError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].FormatCLI()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d problems found:\n", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("  ")
		b.WriteString(d.FormatCLI())
		b.WriteRune('\n')
	}
	return b.String()
}

// HasFatal reports whether any diagnostic in the set is severity-error,
// i.e. whether code-gen must abort for this translation unit (§7).
func (e *TranspileError) HasFatal() bool {
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// --- Per-kind constructors, producing the exact message forms spec'd in §4/§8 ---

func errEnumNegative(name string, value int64, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindEnumNegative,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Enum member '%s' resolved to negative value %d", name, value),
		File:     file,
		At:       at,
	}
}

// errBitmapWidthMismatch reproduces the exact wording from spec §4.1 / §8
// scenario 6: "Bitmap 'NAME' has K bits but bitmapW requires exactly W bits".
func errBitmapWidthMismatch(name string, actualBits, declaredWidth int, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindBitmapWidthMismatch,
		Severity: SeverityError,
		Message: fmt.Sprintf(
			"Bitmap '%s' has %d bits but bitmap%d requires exactly %d bits",
			name, actualBits, declaredWidth, declaredWidth,
		),
		File: file,
		At:   at,
	}
}

func errCapacitySizeOnNonString(propertyName, identifier string, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindCapacitySizeOnNonString,
		Severity: SeverityError,
		Message:  fmt.Sprintf(".%s applied to non-string identifier '%s'", propertyName, identifier),
		File:     file,
		At:       at,
	}
}

func errRegisterReadOnly(target string, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindRegisterReadOnly,
		Severity: SeverityError,
		Message:  fmt.Sprintf("cannot assign to read-only register member '%s'", target),
		File:     file,
		At:       at,
	}
}

func errUnknownTypeReference(typeName string, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindUnknownTypeReference,
		Severity: SeverityError,
		Message:  fmt.Sprintf("unknown type reference '%s'", typeName),
		File:     file,
		At:       at,
	}
}

func warnIncludeNotFound(includePath string, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindIncludeNotFound,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("include not found: %s", includePath),
		File:     file,
		At:       at,
	}
}

func errInvalidConstantExpression(text string, file string, at Location) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidConstantExpression,
		Severity: SeverityError,
		Message:  fmt.Sprintf("invalid constant expression: %q", text),
		File:     file,
		At:       at,
	}
}

func errSyntax(message string, file string, at Location, severity Severity) Diagnostic {
	return Diagnostic{
		Kind:     KindSyntaxError,
		Severity: severity,
		Message:  message,
		File:     file,
		At:       at,
	}
}
