package fixup

import "fmt"

// NotImplementedError reports that a Fixup has no scenario handling for a
// given host OS.
type NotImplementedError struct {
	Fixup string
	OS    string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("fixup: %s does not support OS %q", e.Fixup, e.OS)
}
