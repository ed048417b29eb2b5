/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package gotaps implements a Transport Services (TAPS) client library: an
// API that lets applications express what they need from a transport
// (reliability, ordering, message boundaries, congestion control,
// low-latency startup, multistreaming, ...) rather than which protocol to
// use, then selects, races, and operates a concrete transport stack (TCP,
// UDP, or QUIC) that best satisfies those needs.
//
// The three coupled subsystems of the Preconnection engine -
// property-driven protocol ranking (properties.Rank), candidate gathering
// (internal/candidate), and delayed connection racing (internal/race) - are
// exercised by Preconnection.Initiate and Preconnection.Listen. Connection
// and Listener expose the resulting transport uniformly across protocols.
package gotaps

import (
	"github.com/nabbar/gotaps/errors"
	"github.com/nabbar/gotaps/framer"
)

// Message re-exports framer.Message so callers never need to import the
// framer package just to construct one.
type Message[T any] = framer.Message[T]

// MessageContext re-exports framer.MessageContext.
type MessageContext = framer.MessageContext

// NewMessage re-exports framer.NewMessage.
func NewMessage[T any](payload T) Message[T] {
	return framer.NewMessage(payload)
}

// TapsError is the closed error taxonomy of spec §7. Use errors.Is(err,
// gotaps.ErrNoCandidateSucceeded) etc. to match on Kind.
type TapsError = errors.Error

// Kind re-exports errors.Kind.
type Kind = errors.Kind

// The closed set of failure kinds (spec §7), re-exported so callers never
// need to import the errors package directly.
const (
	ErrRemoteEndpointNotProvided                       = errors.RemoteEndpointNotProvided
	ErrLocalEndpointNotProvided                        = errors.LocalEndpointNotProvided
	ErrRemoteEndpointPortNotProvided                   = errors.RemoteEndpointPortNotProvided
	ErrRemoteEndpointAddressAndHostNameBothNotProvided = errors.RemoteEndpointAddressAndHostNameBothNotProvided
	ErrNoCompatibleProtocolStacks                      = errors.NoCompatibleProtocolStacks
	ErrProtocolNotSupported                            = errors.ProtocolNotSupported
	ErrConnectionAttemptFailed                         = errors.ConnectionAttemptFailed
	ErrNoCandidateSucceeded                            = errors.NoCandidateSucceeded
	ErrMessageSendFailed                               = errors.MessageSendFailed
	ErrMessageReceiveFailed                            = errors.MessageReceiveFailed
	ErrIo                                              = errors.Io
)
