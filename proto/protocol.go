/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package proto identifies the transport protocol stacks gotaps knows how to
// select and dial, and holds the Selection Properties Registry (spec §4.1):
// a static, read-only table of each protocol's per-property ServiceLevel.
package proto

// ID identifies a supported transport protocol stack.
type ID uint8

const (
	Unknown ID = iota
	TCP
	UDP
	QUIC
)

var idNames = map[ID]string{
	TCP:  "tcp",
	UDP:  "udp",
	QUIC: "quic",
}

// String returns the protocol identifier's canonical lowercase name, or the
// empty string for an undefined value.
func (i ID) String() string {
	return idNames[i]
}

// Code is an alias of String retained for parity with the network
// identifiers this type is grounded on, which expose both names.
func (i ID) Code() string {
	return i.String()
}

// All returns every protocol identifier registered, in a stable order.
func All() []ID {
	return []ID{TCP, UDP, QUIC}
}
