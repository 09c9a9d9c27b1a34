package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/kylelemons/godebug/pretty"
)

var (
	// debugTree controls debug output from tree traversal and mutation.
	// Since this flips a package-global, it MUST NOT be toggled in a
	// setting where thread-safety across goroutines is required.
	debugTree = false
	// globalIndent tracks the current DbgPrint nesting indent.
	globalIndent = ""
)

// SetDebug turns tree debug printing on or off.
func SetDebug(on bool) {
	debugTree = on
}

// Debug reports whether tree debug printing is currently enabled.
func Debug() bool {
	return debugTree
}

// DbgPrint prints v, formatted like fmt.Sprintf, to standard error if
// debug printing is enabled. A trailing newline is added.
func DbgPrint(format string, v ...interface{}) {
	if !debugTree {
		return
	}
	fmt.Fprintln(os.Stderr, globalIndent+fmt.Sprintf(format, v...))
}

// Indent increases the DbgPrint indent level.
func Indent() {
	if !debugTree {
		return
	}
	globalIndent += ". "
}

// Dedent decreases the DbgPrint indent level.
func Dedent() {
	if !debugTree {
		return
	}
	globalIndent = strings.TrimPrefix(globalIndent, ". ")
}

// ResetIndent sets the indent level back to zero.
func ResetIndent() {
	globalIndent = ""
}

// PrettyDump renders v (typically the []hconfig.DumpNode of Root.Dump) for
// human inspection in --debug CLI output.
func PrettyDump(v interface{}) string {
	return pretty.Sprint(v)
}
