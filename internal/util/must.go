package util

import (
	"fmt"
	"os"
)

// Must returns v, or exits the process when err is non-nil. Reserve it for
// writes to stdout where failure leaves nothing to recover.
func Must[T any](v T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}
