// Package api implements the HTTP transport for the newsdesk content
// backend: endpoint descriptors, the fallback-execution primitive shared by
// fetch and submit operations, and response envelope normalization.
package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout marks an attempt that exceeded its per-attempt budget.
var ErrTimeout = errors.New("attempt timed out")

// ErrTransport marks an attempt where no response was reachable at all.
var ErrTransport = errors.New("transport error")

// ServerError is a reachable endpoint answering with a non-2xx status.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return fmt.Sprintf("server error: status %d: %s", e.Status, e.Message)
}

// ParseError is a 2xx response whose body did not match any known envelope
// shape. It does not count as transport success; the fallback chain moves on.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "unrecognized response shape: " + e.Reason
}

// Attempt records the outcome of one descriptor inside a fallback chain.
type Attempt struct {
	Descriptor string
	Err        error
}

// ExhaustedError aggregates every attempt failure after a fallback chain ran
// out of descriptors. It is the only transport failure surfaced to callers;
// individual attempt errors are recovered (and logged) inside the chain.
type ExhaustedError struct {
	Op       string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %v", a.Descriptor, a.Err))
	}
	return fmt.Sprintf("all endpoints exhausted for %s: %s", e.Op, strings.Join(reasons, "; "))
}
