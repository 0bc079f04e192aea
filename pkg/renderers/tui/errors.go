package tui

import "errors"

// ErrAborted signals the user interrupted the prompt session.
var ErrAborted = errors.New("tui: session aborted")
