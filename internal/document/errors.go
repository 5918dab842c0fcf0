// Package document implements copy-on-write editing of a CV Document.
//
// Every operation takes a Document (or one of its collections) by value and returns a new one.
// Inputs are never written through. Operations are total: an absent id, an unknown field or a
// value of the wrong type leaves the result equal to the input.
package document

import "errors"

// ErrUnknownSection is returned by ParseSection for names outside Sections.
var ErrUnknownSection = errors.New("unknown section")

// ErrUnknownField is returned by CheckField when a section has no settable field of that name.
var ErrUnknownField = errors.New("unknown field")

// ErrInvalidValue is returned by CheckValue when a value has the wrong type for its field.
var ErrInvalidValue = errors.New("invalid value")
