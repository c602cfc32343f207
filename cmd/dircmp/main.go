package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes: 0 no differences, 1 differences found, 2 errors.
const (
	exitSame    = 0
	exitChanges = 1
	exitError   = 2
)

// exitStatus carries a non-zero status out of a command without printing.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		os.Exit(exitSame)
	}

	var status exitStatus
	if errors.As(err, &status) {
		os.Exit(int(status))
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitError)
}
