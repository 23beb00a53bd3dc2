package main

import (
	"errors"
	"fmt"
	"os"
)

// Process exit codes. Scripts distinguish a round with no votable result
// from an outright error.
const (
	ExitSuccess     = 0
	ExitRoundFailed = 1 // the round ran but nothing could be voted on
	ExitError       = 2 // configuration or runtime error
)

// RoundFailedError indicates that the round ran but every model call
// failed, so there was nothing to vote on.
type RoundFailedError struct {
	Message string
}

func (e *RoundFailedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var roundFailedErr *RoundFailedError
		if errors.As(err, &roundFailedErr) {
			os.Exit(ExitRoundFailed)
		}
		os.Exit(ExitError)
	}
}
