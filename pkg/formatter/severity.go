package formatter

import (
	"io"

	"github.com/fatih/color"
)

var (
	errColor     = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// Errorf prints a severity-coded fatal message
func Errorf(w io.Writer, format string, a ...interface{}) {
	errColor.Fprintf(w, format, a...)
}

// Warnf prints a severity-coded warning message
func Warnf(w io.Writer, format string, a ...interface{}) {
	warnColor.Fprintf(w, format, a...)
}

// Successf prints a severity-coded success message
func Successf(w io.Writer, format string, a ...interface{}) {
	successColor.Fprintf(w, format, a...)
}
