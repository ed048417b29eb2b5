/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors provides the closed TapsError taxonomy used across the
// gotaps module: protocol selection failures, candidate-attempt failures,
// and message I/O failures all resolve to one of a fixed set of Kind
// values, wrapped together with the operation name and (where present) the
// lower-level cause.
//
// Example usage, with the standard library's errors package imported as
// stderrors:
//
//	err := errors.New(errors.NoCandidateSucceeded, "Preconnection.Initiate")
//	if stderrors.Is(err, errors.NoCandidateSucceeded) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Kind enumerates the closed TapsError taxonomy from spec §7. A Kind is
// comparable and may be matched with errors.Is.
type Kind uint8

const (
	// Unknown is the zero value. It is returned only for failures outside
	// the taxonomy below, such as a profile that fails to load in
	// gotaps.NewFromProfile.
	Unknown Kind = iota

	RemoteEndpointNotProvided
	LocalEndpointNotProvided
	RemoteEndpointPortNotProvided
	RemoteEndpointAddressAndHostNameBothNotProvided
	NoCompatibleProtocolStacks
	ProtocolNotSupported
	ConnectionAttemptFailed
	NoCandidateSucceeded
	MessageSendFailed
	MessageReceiveFailed
	Io
)

var kindNames = map[Kind]string{
	Unknown:                          "unknown",
	RemoteEndpointNotProvided:        "remote endpoint not provided",
	LocalEndpointNotProvided:         "local endpoint not provided",
	RemoteEndpointPortNotProvided:    "remote endpoint port not provided",
	RemoteEndpointAddressAndHostNameBothNotProvided: "remote endpoint address and host name both not provided",
	NoCompatibleProtocolStacks:       "no compatible protocol stacks",
	ProtocolNotSupported:             "protocol not supported",
	ConnectionAttemptFailed:          "connection attempt failed",
	NoCandidateSucceeded:             "no candidate succeeded",
	MessageSendFailed:                "message send failed",
	MessageReceiveFailed:             "message receive failed",
	Io:                               "io error",
}

// String returns the human-readable name of the Kind, or "unknown" for an
// undefined value.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Unknown]
}

// Error lets a bare Kind value be used as the target of errors.Is(err, SomeKind)
// without constructing an *Error first; Kind itself satisfies the error
// interface for that purpose only.
func (k Kind) Error() string {
	return k.String()
}

// Error is the concrete TapsError type: a Kind, the operation that raised
// it, and an optional wrapped cause.
type Error struct {
	kind Kind
	op   string
	err  error
}

// New builds a TapsError with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{kind: kind, op: op}
}

// Wrap builds a TapsError of the given Kind, recording op as the operation
// that failed and cause as the lower-level error (e.g. a net.OpError).
func Wrap(kind Kind, op string, cause error) *Error {
	return &Error{kind: kind, op: op, err: cause}
}

// Kind returns the error's Kind.
func (e *Error) Kind() Kind {
	if e == nil {
		return Unknown
	}
	return e.kind
}

// Op returns the operation name the error was raised from.
func (e *Error) Op() string {
	if e == nil {
		return ""
	}
	return e.op
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.op, e.kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.op, e.kind)
}

// Unwrap exposes the wrapped cause, if any, to errors.Unwrap/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Is reports whether target is a Kind equal to this error's Kind, or
// another *Error with the same Kind. This lets callers pass a bare Kind such
// as NoCandidateSucceeded as the target of the standard library's errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if k, ok := target.(Kind); ok {
		return e.kind == k
	}
	var other *Error
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}
