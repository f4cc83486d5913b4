// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes a run can surface. Typed
// errors below match them with errors.Is.
var (
	// ErrParse indicates a malformed keyword expression or upstream response.
	ErrParse = errors.New("parse error")

	// ErrFetch indicates a transport or HTTP failure talking to an external API.
	ErrFetch = errors.New("fetch error")

	// ErrValidation indicates invalid run parameters.
	ErrValidation = errors.New("validation error")
)

// ParseError reports input that could not be parsed. Stage names the input
// ("keywords", "arxiv", "semantic_scholar").
type ParseError struct {
	Stage string

	// Input is the full text being parsed, when short enough to be useful.
	Input string

	// Fragment is the offending part of Input. Offset is its byte offset in
	// Input, or -1 when not applicable.
	Fragment string
	Offset   int

	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Stage + ": parse error"
	if e.Fragment != "" {
		if e.Offset >= 0 {
			msg += fmt.Sprintf(" at offset %d near %q", e.Offset, e.Fragment)
		} else {
			msg += fmt.Sprintf(" near %q", e.Fragment)
		}
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying decode error, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FetchError reports a failed request to an external API. StatusCode is 0
// when no HTTP response was received.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: request failed (HTTP %d): %v", e.Source, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API returned HTTP %d", e.Source, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: request failed: %v", e.Source, e.Err)
	default:
		return e.Source + ": request failed"
	}
}

// Unwrap returns the transport error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ValidationError represents invalid run parameters for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
