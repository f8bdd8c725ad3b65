package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/runtax/runtax"
)

var (
	errorStyle    = color.New(color.FgRed, color.Bold)
	warningStyle  = color.New(color.FgHiYellow, color.Bold)
	positionStyle = color.New(color.FgCyan, color.Bold)
	textStyle     = color.New(color.FgWhite)
)

// report prints err, highlighting the position of positioned errors.
func report(w io.Writer, err error) {
	printError(w, errorStyle, "error", err)
}

// warn prints a definition that was skipped.
func warn(w io.Writer, err *runtax.CompileError) {
	printError(w, warningStyle, "skipped", err)
}

func printError(w io.Writer, style *color.Color, label string, err error) {
	var positioned runtax.Error
	if !errors.As(err, &positioned) {
		fmt.Fprintf(w, "%s: %s\n", style.Sprint(label), err)
		return
	}
	fmt.Fprintf(w, "%s: %s: %s\n", style.Sprint(label), positionStyle.Sprint(positioned.Position()), positioned.Message())
	var compileErr *runtax.CompileError
	if errors.As(err, &compileErr) && compileErr.Text != "" {
		fmt.Fprintf(w, "  %s\n", textStyle.Sprint(compileErr.Text))
	}
}
