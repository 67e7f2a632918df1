package tui

import "errors"

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("tui: fill aborted")

// ErrNoStore is returned by Fill without a session to write into.
var ErrNoStore = errors.New("tui: no form session")
