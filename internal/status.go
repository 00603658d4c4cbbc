package internal

import "errors"

// Status is the outcome of a single cycle.
type Status uint8

// Cycle outcomes
const (
	StatusOK Status = iota
	StatusWaitingForInput
	StatusDecodeError
	StatusUnsupportedInstruction
	StatusStackOverflow
	StatusStackUnderflow
	StatusOutOfBounds
)

var statusNames = [...]string{
	StatusOK:                     "ok",
	StatusWaitingForInput:        "waiting for input",
	StatusDecodeError:            "decode error",
	StatusUnsupportedInstruction: "unsupported instruction",
	StatusStackOverflow:          "stack overflow",
	StatusStackUnderflow:         "stack underflow",
	StatusOutOfBounds:            "out of bounds",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Failed reports whether the status ends the run.
func (s Status) Failed() bool {
	return s != StatusOK && s != StatusWaitingForInput
}

// statusFor maps a cycle error to its status.
func statusFor(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrDecode):
		return StatusDecodeError
	case errors.Is(err, ErrStackOverflow):
		return StatusStackOverflow
	case errors.Is(err, ErrStackUnderflow):
		return StatusStackUnderflow
	case errors.Is(err, ErrOutOfBounds):
		return StatusOutOfBounds
	default:
		return StatusUnsupportedInstruction
	}
}
