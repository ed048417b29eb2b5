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

// Package framer sits between typed application messages and the byte
// streams a Connection actually moves (spec §4.6). It is a smaller,
// type-parameterized cousin of the postsocket FramingHandler interface
// (mami-project-postsocket/api.go: Frame(msg) ([]byte, error) / Deframe(io.Reader) (Message, error)):
// where postsocket frames an untyped interface{} through a shared handler
// per Connection, gotaps gives the sender and receiver types as Framer's
// type parameters, so a Connection's Framer reference statically guarantees
// the application and the wire agree on encoding.
//
// The Framer is stateless per-message in this core; stream-spanning
// framers are left as a future extension (spec §4.6).
package framer

// MessageContext is opaque per-message metadata, reserved for future
// negotiation hooks (spec §3). The core never interprets its contents.
type MessageContext map[string]interface{}

// Message is the generic envelope carrying an application-typed payload
// and an optional MessageContext (spec §3).
type Message[T any] struct {
	Payload T
	Context MessageContext
}

// NewMessage wraps a payload with no context.
func NewMessage[T any](payload T) Message[T] {
	return Message[T]{Payload: payload}
}

// Framer converts between typed Messages and the bytes a TransportInstance
// sends and receives (spec §4.6). T is the type sent through this Framer;
// U is the type produced when decoding received bytes.
type Framer[T any, U any] interface {
	// NewSentMessage encodes msg into bytes to write to the wire.
	NewSentMessage(msg Message[T]) ([]byte, error)

	// HandleReceivedData decodes bytes read from the wire into U.
	HandleReceivedData(data []byte) (U, error)
}
