package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var (
	jsonMode bool

	// Out is where command results and progress lines are written. Tests
	// substitute a buffer.
	Out io.Writer = os.Stdout
)

// SetJSONMode switches all commands from human-readable console lines to a
// single JSON object on the final line of output.
func SetJSONMode(enabled bool) {
	jsonMode = enabled
}

func IsJSONMode() bool {
	return jsonMode
}

// Progressf prints an intermediate progress line. Suppressed in JSON mode so
// the machine-readable object stays the only thing on stdout.
func Progressf(format string, args ...interface{}) {
	if jsonMode {
		return
	}
	fmt.Fprintf(Out, format, args...)
}

// OutputResult emits the command result as an indented JSON object. It is a
// no-op in human mode, where commands print their own lines. Integer amounts
// must already be carried as decimal strings by the caller so no precision is
// lost in serialization.
func OutputResult(data interface{}) {
	if !jsonMode {
		return
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to serialize result: %v\n", err)
		return
	}
	fmt.Fprintln(Out, string(encoded))
}
